package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goa.design/subagent/wire"
)

func TestInnerToolResultJSONRoundTrip(t *testing.T) {
	original := wire.InnerToolResult{
		ID:   "tool-use-1",
		Name: "external_api",
		Output: []wire.ContentBlock{
			wire.TextBlock{Text: "called successfully"},
			wire.ToolUseBlock{ID: "nested-1", Name: "followup", Input: map[string]any{"x": float64(1)}},
		},
		Metadata: map[string]any{"is_error": false},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded wire.InnerToolResult
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Output, 2)
	text, ok := decoded.Output[0].(wire.TextBlock)
	require.True(t, ok)
	assert.Equal(t, "called successfully", text.Text)

	toolUse, ok := decoded.Output[1].(wire.ToolUseBlock)
	require.True(t, ok)
	assert.Equal(t, "nested-1", toolUse.ID)
	assert.Equal(t, "followup", toolUse.Name)
}

func TestPendingContextJSONRoundTripPreservesConcreteBlockTypes(t *testing.T) {
	original := []wire.PendingContext{
		{
			OuterToolCallID: "outer-1",
			SessionID:       "sess-1",
			PendingResults: []wire.InnerToolResult{
				{ID: "r1", Output: []wire.ContentBlock{wire.TextBlock{Text: "ok"}}},
			},
		},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded []wire.PendingContext
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded, 1)
	require.Len(t, decoded[0].PendingResults, 1)
	block := decoded[0].PendingResults[0].Output[0]
	tb, ok := block.(wire.TextBlock)
	require.True(t, ok, "expected concrete TextBlock after round trip, got %T", block)
	assert.Equal(t, "ok", tb.Text)
}

func TestToolResultJSONRoundTrip(t *testing.T) {
	original := wire.ToolResult{
		ID:   "call-1",
		Name: "call_helper",
		Output: []wire.ContentBlock{
			wire.TextBlock{Text: "session_id: sess-1\n\nhello"},
		},
		Metadata: map[string]any{wire.MetaSuspended: true},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded wire.ToolResult
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Output, 1)
	tb, ok := decoded.Output[0].(wire.TextBlock)
	require.True(t, ok)
	assert.Equal(t, "session_id: sess-1\n\nhello", tb.Text)
	assert.Equal(t, true, decoded.Metadata[wire.MetaSuspended])
}

func TestToolResultJSONRoundTripWithError(t *testing.T) {
	original := wire.ToolResult{Error: wire.NewToolError("boom")}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded wire.ToolResult
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Error)
	assert.Equal(t, "boom", decoded.Error.Message)
}
