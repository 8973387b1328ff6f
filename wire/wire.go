// Package wire defines the wire contract shared by every component of the
// sub-agent coordinator: the identifiers, the pending-context triple, the
// tool-result shape produced by the core, and the closed set of termination
// reasons that decide whether a result is suspended.
package wire

type (
	// SessionID is an opaque, non-empty identifier for a sub-agent session.
	// It is stable across a suspend/resume cycle and across multiple turns of
	// the same conversation.
	SessionID string

	// OuterToolCallID is the identifier of the tool-use block through which a
	// parent agent invoked the sub-agent tool. It is stable across one
	// suspend/resume cycle; a fresh outer call gets a fresh id.
	OuterToolCallID string

	// ContentBlock is implemented by every content block carried in a tool
	// result's output: plain text and pending tool-use declarations.
	ContentBlock interface {
		isContentBlock()
	}

	// TextBlock is a plain-text content block.
	TextBlock struct {
		Text string
	}

	// ToolUseBlock declares a tool invocation the sub-agent attempted while
	// reasoning. It only appears in a suspended result's output.
	ToolUseBlock struct {
		// ID correlates this tool use to a later InnerToolResult.
		ID string
		// Name is the tool identifier the sub-agent requested.
		Name string
		// Input is the JSON-compatible arguments object the sub-agent produced.
		Input any
	}

	// InnerToolResult is a record shaped like any other tool result block, but
	// carries results for tools the sub-agent tried to invoke while reasoning.
	InnerToolResult struct {
		ID       string
		Name     string
		Output   []ContentBlock
		Metadata map[string]any
	}

	// PendingContext is the triple held by PendingStore while an outer call is
	// suspended: the outer call id, the session it belongs to, and the inner
	// tool results staged so far. It is immutable once read out; internal
	// updates replace the whole value.
	PendingContext struct {
		OuterToolCallID OuterToolCallID
		SessionID       SessionID
		PendingResults  []InnerToolResult
	}

	// ToolResult is the result block produced by the coordinator for an outer
	// tool call. Output may contain TextBlocks and/or pending ToolUseBlocks
	// (only when Metadata marks the result suspended). Error is set instead
	// of Output for error-shaped results; a result never carries both.
	ToolResult struct {
		ID       string
		Name     string
		Output   []ContentBlock
		Metadata map[string]any
		Error    *ToolError
	}

	// TerminationReason is the closed enumeration of reasons a sub-agent reply
	// can carry. Only ModelStop is non-suspending.
	TerminationReason string
)

const (
	// ModelStop indicates the sub-agent produced a natural final response.
	ModelStop TerminationReason = "ModelStop"
	// ToolSuspended indicates the sub-agent's last step requires human
	// approval of a pending inner tool use before it can continue.
	ToolSuspended TerminationReason = "ToolSuspended"
	// ReasoningStopRequested indicates an external actor requested the
	// sub-agent's reasoning phase stop before completion.
	ReasoningStopRequested TerminationReason = "ReasoningStopRequested"
	// ActingStopRequested indicates an external actor requested the
	// sub-agent's acting phase stop before completion.
	ActingStopRequested TerminationReason = "ActingStopRequested"
)

// IsSuspending reports whether reason requires the coordinator to surface a
// suspended result rather than a normal one.
func (r TerminationReason) IsSuspending() bool {
	switch r {
	case ToolSuspended, ReasoningStopRequested, ActingStopRequested:
		return true
	default:
		return false
	}
}

// Metadata key constants used to mark and detect coordinator-produced and
// coordinator-consumed result/tool-use blocks. These are the single source of
// truth for the coordinator's marker keys.
const (
	// MetaSuspended marks a ToolResult as a suspended sub-agent result.
	MetaSuspended = "suspended"
	// MetaSubAgentSessionID carries the originating session id on a result
	// block. Its presence (non-empty) is what makes a result a "sub-agent
	// result".
	MetaSubAgentSessionID = "subagent_session_id"
	// MetaGenerateReason carries the TerminationReason that caused suspension.
	MetaGenerateReason = "subagent_generate_reason"
	// MetaPreviousToolResult carries staged InnerToolResult values injected by
	// InjectionHook into a rewritten outer tool-use block's metadata.
	MetaPreviousToolResult = "previous_tool_result"

	// MetaStreamEvent annotates a forwarded streaming chunk with the
	// underlying sub-agent event type name.
	MetaStreamEvent = "subagent_event"
	// MetaStreamName annotates a forwarded streaming chunk with the
	// sub-agent's display name.
	MetaStreamName = "subagent_name"
	// MetaStreamID annotates a forwarded streaming chunk with the streamed
	// event's own identifier.
	MetaStreamID = "subagent_id"
	// MetaStreamSessionID annotates a forwarded streaming chunk with the
	// session id of the invocation that produced it.
	MetaStreamSessionID = "subagent_session_id"
)

func (TextBlock) isContentBlock()    {}
func (ToolUseBlock) isContentBlock() {}
