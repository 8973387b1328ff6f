package pending_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goa.design/subagent/pending"
	"goa.design/subagent/wire"
)

func TestSetSessionIDRejectsEmpty(t *testing.T) {
	s := pending.New()
	assert.ErrorIs(t, s.SetSessionID("", "sess"), pending.ErrInvalidArgument)
	assert.ErrorIs(t, s.SetSessionID("outer", ""), pending.ErrInvalidArgument)
}

func TestAddResultsRequiresPriorSession(t *testing.T) {
	s := pending.New()
	err := s.AddResult("outer-1", wire.InnerToolResult{ID: "t1"})
	assert.ErrorIs(t, err, pending.ErrMissingSession)

	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "t1"}))
	assert.True(t, s.HasPendingResults("outer-1"))
}

func TestAddResultsPreservesOrder(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "a"}))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "b"}))
	require.NoError(t, s.AddResults("outer-1", []wire.InnerToolResult{{ID: "c"}, {ID: "d"}}))

	got := s.GetPendingResults("outer-1")
	require.Len(t, got, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestGetPendingResultsDefensiveCopy(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "a"}))

	got := s.GetPendingResults("outer-1")
	got[0].ID = "mutated"
	got = append(got, wire.InnerToolResult{ID: "extra"})

	again := s.GetPendingResults("outer-1")
	require.Len(t, again, 1)
	assert.Equal(t, "a", again[0].ID)
}

func TestSetSessionIDRestartDiscardsPendingResults(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "a"}))
	require.True(t, s.HasPendingResults("outer-1"))

	require.NoError(t, s.SetSessionID("outer-1", "sess-2"))
	assert.False(t, s.HasPendingResults("outer-1"))
	got, ok := s.GetSessionID("outer-1")
	require.True(t, ok)
	assert.Equal(t, wire.SessionID("sess-2"), got)
}

func TestConsumeIsAtomicReadAndRemove(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "a"}))

	ctx, ok := s.Consume("outer-1")
	require.True(t, ok)
	assert.Equal(t, wire.SessionID("sess-1"), ctx.SessionID)
	assert.Len(t, ctx.PendingResults, 1)

	_, ok = s.Consume("outer-1")
	assert.False(t, ok)
	assert.False(t, s.Contains("outer-1"))
}

func TestRemoveOnUnknownIDReturnsFalse(t *testing.T) {
	s := pending.New()
	_, ok := s.Remove("missing")
	assert.False(t, ok)
}

func TestClearAllDropsEverything(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.SetSessionID("outer-2", "sess-2"))
	s.ClearAll()
	assert.False(t, s.Contains("outer-1"))
	assert.False(t, s.Contains("outer-2"))
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := pending.New()
	require.NoError(t, s.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, s.AddResult("outer-1", wire.InnerToolResult{ID: "a", Metadata: map[string]any{"k": "v"}}))

	snap := s.Snapshot()

	fresh := pending.New()
	fresh.Restore(snap)

	got, ok := fresh.GetSessionID("outer-1")
	require.True(t, ok)
	assert.Equal(t, wire.SessionID("sess-1"), got)
	assert.Equal(t, s.GetPendingResults("outer-1"), fresh.GetPendingResults("outer-1"))
}

func ids(results []wire.InnerToolResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
