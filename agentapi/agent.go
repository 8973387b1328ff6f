// Package agentapi declares the seams through which the sub-agent
// coordinator drives a wrapped reasoning/acting engine, without depending on
// any concrete implementation of that engine. The reasoning/acting loop
// itself is supplied by the embedding application: this package only names
// the capability surfaces the coordinator needs.
package agentapi

import (
	"context"

	"goa.design/subagent/model"
	"goa.design/subagent/session"
	"goa.design/subagent/wire"
)

type (
	// Agent is the capability surface of a wrapped reasoning/acting engine:
	// it can be called synchronously or driven as a stream of events.
	// Implementations are never shared across invocations; the coordinator
	// creates one fresh instance per call via AgentProvider and discards it
	// at the end of the call.
	Agent interface {
		// Name returns the agent's display name, used to annotate forwarded
		// stream events. The tool's default name/description are derived from
		// AgentProvider instead.
		Name() string
		// Description returns the agent's display description.
		Description() string
		// Call drives the agent synchronously to completion (or suspension)
		// and returns its final response.
		Call(ctx context.Context, messages []*model.Message) (*Response, error)
		// Stream drives the agent and delivers intermediate events through the
		// returned channel, which is closed when the run reaches its terminal
		// state. The final element of events, if any, carries the terminal
		// Response; implementations that cannot produce incremental events may
		// emit a single final event.
		Stream(ctx context.Context, messages []*model.Message, opts StreamOptions) (<-chan Event, error)
	}

	// AgentProvider is a pure factory: New returns a fresh Agent instance for
	// one invocation. It must not return a shared or pooled instance.
	AgentProvider interface {
		New(ctx context.Context) (Agent, error)
		// Name returns the display name of the agents this provider produces,
		// answerable without constructing an instance so a wrapping tool can
		// derive its own default name.
		Name() string
		// Description returns the display description of the agents this
		// provider produces.
		Description() string
		// Capabilities reports what agents this provider produces support,
		// without constructing an instance, so a wrapping tool can validate
		// HITL compatibility once at construction time.
		Capabilities() Capabilities
	}

	// Capabilities summarizes what a wrapped agent supports, avoiding any
	// runtime type-hierarchy coupling between the coordinator and the
	// concrete agent implementation.
	Capabilities struct {
		// CanSuspend reports whether the agent is a reasoning/acting agent
		// capable of producing a suspending TerminationReason. Required for
		// HITL to be enabled.
		CanSuspend bool
		// ParticipatesInState reports whether the agent additionally
		// implements StateModule and can save/restore its state across calls.
		ParticipatesInState bool
	}

	// StateModule is the optional capability surface for agents that persist
	// state across calls under a session store logical key.
	StateModule interface {
		SaveTo(ctx context.Context, store session.Store, key string) error
		LoadFrom(ctx context.Context, store session.Store, key string) error
	}

	// Response is the terminal outcome of one Call/Stream invocation.
	Response struct {
		// Output is the content of the agent's last message: text produced so
		// far, and, when suspended, the pending tool-use declarations.
		Output []wire.ContentBlock
		// Reason is the termination reason that produced this response.
		Reason wire.TerminationReason
	}

	// StreamOptions configures which intermediate events a streamed call
	// should emit. The zero value requests the agent's default event set.
	StreamOptions struct {
		// IncludeReasoning requests intermediate reasoning/thought events.
		IncludeReasoning bool
		// IncludeActing requests intermediate tool-acting events.
		IncludeActing bool
	}

	// Event is one intermediate update produced while streaming an agent
	// call. The coordinator forwards these out-of-band via stream.Sink and
	// retains the last one as the terminal Response source.
	Event struct {
		// ID identifies this event within the run.
		ID string
		// Name names the event kind (e.g. "reasoning", "acting", "final").
		Name string
		// Final marks the event carrying the terminal Response.
		Final bool
		// Response is populated when Final is true.
		Response *Response
		// Payload carries event-kind-specific detail for forwarding.
		Payload any
	}
)
