package subagent

import (
	"goa.design/subagent/agentapi"
	"goa.design/subagent/session"
	"goa.design/subagent/session/inmem"
	"goa.design/subagent/stream"
	"goa.design/subagent/telemetry"
)

// Config configures a Tool. Construct a Config (NewConfig for the documented
// defaults, or a zero value to opt out of every default), set the fields
// that matter, and pass it to New.
type Config struct {
	// ToolName overrides the derived tool name. Empty uses derivation from
	// the wrapped agent's display name.
	ToolName string
	// Description overrides the derived tool description. Empty uses the
	// wrapped agent's description, or a generic fallback.
	Description string
	// ForwardEvents drives the wrapped agent via its streaming entry point
	// and forwards every intermediate event to Sink, retaining the last
	// event as the terminal response. When false, the synchronous entry
	// point is used and no events are forwarded. NewConfig defaults this to
	// true.
	ForwardEvents bool
	// StreamOptions filters which intermediate events Stream emits when
	// ForwardEvents is true. The zero value requests the agent's defaults.
	StreamOptions agentapi.StreamOptions
	// Session is the backing state store for wrapped-agent state. NewConfig
	// defaults this to an in-memory store; a caller sharing state across
	// multiple tools should supply one explicitly.
	Session session.Store
	// EnableHITL turns on the suspension/resumption protocol. Requires the
	// wrapped agent to support suspension (agentapi.Capabilities.CanSuspend);
	// New fails with ErrIncompatibleHITL otherwise.
	EnableHITL bool
	// ParentSupportsHITL reports whether the parent agent loop that will
	// dispatch this tool has its own sub-agent HITL support enabled. Only
	// consulted when EnableHITL is true. nil means the caller cannot detect
	// the parent's support, in which case New skips the check entirely; a
	// non-nil false logs a warning instead of failing construction
	// (resumption from the parent side would be impossible, but
	// construction still succeeds).
	ParentSupportsHITL *bool
	// Sink receives forwarded streaming chunks when ForwardEvents is true.
	// A nil Sink silently disables forwarding regardless of ForwardEvents.
	Sink stream.Sink
	// Logger receives structured logs for non-fatal failures. Defaults to a
	// no-op logger when nil.
	Logger telemetry.Logger
	// Tracer opens a span around every Invoke call. Defaults to a no-op
	// tracer when nil.
	Tracer telemetry.Tracer
}

// NewConfig returns the documented default Config: event forwarding enabled,
// an in-memory session store, HITL disabled.
func NewConfig() Config {
	return Config{
		ForwardEvents: true,
		Session:       inmem.New(),
	}
}
