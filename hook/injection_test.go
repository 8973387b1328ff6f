package hook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goa.design/subagent/coordinator"
	"goa.design/subagent/hook"
	"goa.design/subagent/wire"
)

// TestInterceptPassesThroughWithoutIDOrInput checks that a tool-use block
// missing an id or an input map is never rewritten.
func TestInterceptPassesThroughWithoutIDOrInput(t *testing.T) {
	h := hook.New(coordinator.New())

	noID := hook.ToolUseEvent{Input: map[string]any{"a": 1}}
	assert.Equal(t, noID, h.Intercept(noID))

	noInput := hook.ToolUseEvent{ID: "outer-1"}
	assert.Equal(t, noInput, h.Intercept(noInput))
}

// TestInterceptRewritesRegisteredCallWithoutResults covers a registered outer
// call with no staged results: the entry is still consumed and the tool-use
// is rewritten with an empty previous_tool_result list and the session id, so
// the sub-agent resumes with no injected messages.
func TestInterceptRewritesRegisteredCallWithoutResults(t *testing.T) {
	c := coordinator.New()
	require.NoError(t, c.SetSessionID("outer-1", "sess-1"))
	h := hook.New(c)

	event := hook.ToolUseEvent{ID: "outer-1", Input: map[string]any{"a": 1}}
	rewritten := h.Intercept(event)
	assert.Equal(t, "sess-1", rewritten.Input["session_id"])
	results, ok := rewritten.Metadata[wire.MetaPreviousToolResult].([]wire.InnerToolResult)
	require.True(t, ok)
	assert.Empty(t, results)
	assert.False(t, c.Store().Contains("outer-1"))
}

// TestInterceptRewritesResumingCall checks that a tool-use block whose id
// has staged results gets its metadata and input rewritten, with id/name
// preserved and the original event left untouched.
func TestInterceptRewritesResumingCall(t *testing.T) {
	c := coordinator.New()
	require.NoError(t, c.SetSessionID("outer-1", "sess-1"))
	require.NoError(t, c.SubmitSubAgentResult("outer-1", wire.InnerToolResult{ID: "r1"}))
	h := hook.New(c)

	original := hook.ToolUseEvent{
		ID:    "outer-1",
		Name:  "call_researcher",
		Input: map[string]any{"message": "continue"},
	}
	originalInputCopy := map[string]any{"message": "continue"}

	rewritten := h.Intercept(original)

	assert.Equal(t, "outer-1", rewritten.ID)
	assert.Equal(t, "call_researcher", rewritten.Name)
	assert.Equal(t, "sess-1", rewritten.Input["session_id"])
	assert.Equal(t, "continue", rewritten.Input["message"])

	results, ok := rewritten.Metadata[wire.MetaPreviousToolResult].([]wire.InnerToolResult)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, "r1", results[0].ID)

	// Original event is never mutated.
	assert.Equal(t, originalInputCopy, original.Input)
	assert.Nil(t, original.Metadata)

	// Staged results were consumed: a second intercept is a pass-through.
	second := h.Intercept(original)
	assert.Equal(t, original, second)
}

func TestPriority(t *testing.T) {
	h := hook.New(coordinator.New())
	assert.Equal(t, hook.Priority, h.Priority())
}
