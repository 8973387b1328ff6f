// Package hook implements InjectionHook: the pre-acting interceptor that
// rewrites an outer tool-use block to carry staged inner tool results and
// the session id, atomically draining the coordinator's pending store.
package hook

import (
	"maps"

	"goa.design/subagent/coordinator"
	"goa.design/subagent/wire"
)

// Priority is the ordering value InjectionHook reports to a parent agent
// loop that schedules pre-acting hooks by priority. A lower value runs
// earlier; InjectionHook must run before tool execution so the rewrite it
// produces is visible to the tool.
const Priority = 0

type (
	// ToolUseEvent is the minimal shape of an outer tool-use block the hook
	// inspects and may rewrite. It mirrors the fields a parent agent loop's
	// tool-use representation carries; the hook mutates only the returned
	// copy, never the original value referenced by event.
	ToolUseEvent struct {
		// ID is the tool-use block's identifier (the OuterToolCallID).
		ID string
		// Name is the tool identifier.
		Name string
		// Input is the JSON-compatible arguments map. May be nil.
		Input map[string]any
		// Metadata carries caller/provider metadata. May be nil.
		Metadata map[string]any
	}

	// PreActingHook is implemented by interceptors a parent agent loop runs
	// before dispatching a tool-use block.
	PreActingHook interface {
		// Intercept inspects event and returns the event to dispatch: either
		// event unchanged, or a rewritten copy.
		Intercept(event ToolUseEvent) ToolUseEvent
		// Priority reports this hook's scheduling priority; lower runs earlier.
		Priority() int
	}

	// InjectionHook is the PreActingHook that injects staged sub-agent
	// results into a resuming outer tool-use block.
	InjectionHook struct {
		ctx *coordinator.Context
	}
)

// New constructs an InjectionHook bound to ctx.
func New(ctx *coordinator.Context) *InjectionHook {
	return &InjectionHook{ctx: ctx}
}

// Priority implements PreActingHook.
func (h *InjectionHook) Priority() int { return Priority }

// Intercept implements PreActingHook:
//  1. If the tool-use has no id or no input map, pass through.
//  2. Attempt to consume staged results for the tool-use id. If absent, pass
//     through.
//  3. Otherwise, return a rewritten copy: metadata gains
//     previous_tool_result, input gains session_id; id/name are preserved.
func (h *InjectionHook) Intercept(event ToolUseEvent) ToolUseEvent {
	if event.ID == "" || event.Input == nil {
		return event
	}
	pending, ok := h.ctx.ConsumePendingResult(wire.OuterToolCallID(event.ID))
	if !ok {
		return event
	}

	rewritten := event
	rewritten.Metadata = maps.Clone(event.Metadata)
	if rewritten.Metadata == nil {
		rewritten.Metadata = make(map[string]any, 1)
	}
	rewritten.Metadata[wire.MetaPreviousToolResult] = pending.PendingResults

	rewritten.Input = maps.Clone(event.Input)
	rewritten.Input["session_id"] = string(pending.SessionID)

	return rewritten
}
