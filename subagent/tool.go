// Package subagent implements SubAgentTool: the façade that lets a parent
// agent invoke a wrapped reasoning/acting sub-agent as a single tool,
// mediating session lifecycle, HITL suspension, and resumption with
// injection.
package subagent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"goa.design/subagent/agentapi"
	"goa.design/subagent/hook"
	"goa.design/subagent/model"
	"goa.design/subagent/session"
	"goa.design/subagent/stream"
	"goa.design/subagent/telemetry"
	"goa.design/subagent/wire"
)

// Sentinel errors for programmatic misuse. ErrIncompatibleHITL surfaces at
// construction; ErrMessageRequired never escapes Invoke, which instead
// returns an error-shaped ToolResult whose message is "Message is required".
var (
	// ErrIncompatibleHITL indicates HITL was requested over an agent
	// provider whose Capabilities().CanSuspend is false.
	ErrIncompatibleHITL = errors.New("subagent: HITL requires an agent capable of suspension")
	// ErrMessageRequired indicates a fresh (non-resume) invocation was made
	// without a non-empty message.
	ErrMessageRequired = errors.New("subagent: message is required")
)

// Tool is the SubAgentTool façade (Component D).
type Tool struct {
	name          string
	description   string
	provider      agentapi.AgentProvider
	forwardEvents bool
	streamOptions agentapi.StreamOptions
	session       session.Store
	enableHITL    bool
	sink          stream.Sink
	logger        telemetry.Logger
	tracer        telemetry.Tracer
	capabilities  agentapi.Capabilities
}

// New constructs a Tool wrapping provider. If cfg.EnableHITL is true and the
// provider's Capabilities().CanSuspend is false, New returns
// ErrIncompatibleHITL instead of a Tool: only a reasoning/acting agent can
// suspend in flight, so HITL over anything else is a configuration error.
func New(provider agentapi.AgentProvider, cfg Config) (*Tool, error) {
	caps := provider.Capabilities()
	if cfg.EnableHITL && !caps.CanSuspend {
		return nil, ErrIncompatibleHITL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = telemetry.NewNoopTracer()
	}

	if cfg.EnableHITL && cfg.ParentSupportsHITL != nil && !*cfg.ParentSupportsHITL {
		logger.Warn(context.Background(),
			"subagent: HITL enabled but parent agent does not support sub-agent HITL; resumption will be impossible",
			"tool_name", cfg.ToolName)
	}

	name := cfg.ToolName
	if name == "" {
		name = deriveName(provider.Name())
	}
	description := cfg.Description
	if description == "" {
		description = deriveDescription(provider.Description(), provider.Name())
	}

	return &Tool{
		name:          name,
		description:   description,
		provider:      provider,
		forwardEvents: cfg.ForwardEvents,
		streamOptions: cfg.StreamOptions,
		session:       cfg.Session,
		enableHITL:    cfg.EnableHITL,
		sink:          cfg.Sink,
		logger:        logger,
		tracer:        tracer,
		capabilities:  caps,
	}, nil
}

// Name returns the tool's resolved name.
func (t *Tool) Name() string { return t.name }

// Description returns the tool's resolved description.
func (t *Tool) Description() string { return t.description }

// Capabilities returns the resolved capabilities of the wrapped agent
// provider, for introspection by UI or policy layers.
func (t *Tool) Capabilities() agentapi.Capabilities { return t.capabilities }

// ParameterSchema returns the tool-call input JSON schema.
func (t *Tool) ParameterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_id": map[string]any{
				"type":        "string",
				"description": "Omit for a new session; include to continue.",
			},
			"message": map[string]any{
				"type":        "string",
				"description": "Message to send to the agent.",
			},
		},
		"required": []string{"message"},
	}
}

// Invoke executes one outer tool call. call is the (possibly
// InjectionHook-rewritten) outer tool-use block: Input carries "message"
// and/or "session_id"; Metadata carries "previous_tool_result" when
// resuming. Invoke always returns a non-nil ToolResult and a nil error;
// every runtime failure is recovered into an error-shaped result so the
// parent loop can continue.
func (t *Tool) Invoke(ctx context.Context, call hook.ToolUseEvent) (*wire.ToolResult, error) {
	ctx, span := t.tracer.Start(ctx, "subagent.invoke")
	defer span.End()

	sessionID, isNew := resolveSessionID(call.Input)

	messages, err := t.buildMessages(call)
	if err != nil {
		span.RecordError(err)
		return &wire.ToolResult{Error: wire.NewToolError("Message is required")}, nil
	}

	agent, err := t.provider.New(ctx)
	if err != nil {
		execErr := fmt.Errorf("Execution error: %w", err)
		span.RecordError(execErr)
		return &wire.ToolResult{Error: wire.NewToolErrorWithCause(execErr.Error(), err)}, nil
	}

	if !isNew {
		t.loadState(ctx, agent, sessionID)
	}

	response, err := t.drive(ctx, agent, messages, sessionID)
	if err != nil {
		execErr := fmt.Errorf("Execution error: %w", err)
		span.RecordError(execErr)
		return &wire.ToolResult{Error: wire.NewToolErrorWithCause(execErr.Error(), err)}, nil
	}

	result := t.classify(response, sessionID)
	t.saveState(ctx, agent, sessionID)

	return result, nil
}

// resolveSessionID reads session_id from input, generating a fresh id when
// absent or blank.
func resolveSessionID(input map[string]any) (wire.SessionID, bool) {
	if raw, ok := input["session_id"].(string); ok && raw != "" {
		return wire.SessionID(raw), false
	}
	return wire.SessionID(uuid.NewString()), true
}

// buildMessages detects a resume via the HITL-gated previous_tool_result
// metadata, building one tool-result message per injected result (an empty
// injected list means the sub-agent simply continues); otherwise it requires
// a non-empty message.
func (t *Tool) buildMessages(call hook.ToolUseEvent) ([]*model.Message, error) {
	if t.enableHITL {
		if raw, ok := call.Metadata[wire.MetaPreviousToolResult]; ok {
			results := extractInnerResults(raw)
			messages := make([]*model.Message, 0, len(results))
			for _, r := range results {
				messages = append(messages, model.NewToolResultMessage(r))
			}
			return messages, nil
		}
	}

	message, _ := call.Input["message"].(string)
	if message == "" {
		return nil, ErrMessageRequired
	}
	return []*model.Message{model.NewTextMessage(model.ConversationRoleUser, message)}, nil
}

// extractInnerResults accepts both a directly-typed slice (the in-process
// fast path InjectionHook produces) and a []any slice, keeping only the
// elements of the latter that are already InnerToolResult values. Elements
// of any other type, including the maps a JSON round trip would produce, are
// dropped; nothing is decoded.
func extractInnerResults(raw any) []wire.InnerToolResult {
	switch v := raw.(type) {
	case []wire.InnerToolResult:
		return v
	case []any:
		out := make([]wire.InnerToolResult, 0, len(v))
		for _, item := range v {
			if r, ok := item.(wire.InnerToolResult); ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return nil
	}
}

// drive runs the wrapped agent synchronously or via streaming, forwarding
// each streamed event to the configured sink.
func (t *Tool) drive(ctx context.Context, agent agentapi.Agent, messages []*model.Message, sessionID wire.SessionID) (*agentapi.Response, error) {
	if !t.forwardEvents {
		return agent.Call(ctx, messages)
	}

	events, err := agent.Stream(ctx, messages, t.streamOptions)
	if err != nil {
		return nil, err
	}
	var last *agentapi.Response
	for event := range events {
		stream.ForwardEvent(ctx, t.sink, t.logger, event, agent.Name(), sessionID)
		if event.Final && event.Response != nil {
			last = event.Response
		}
	}
	if last == nil {
		return nil, errors.New("agent stream closed without a terminal response")
	}
	return last, nil
}

// classify builds the normal or suspended result from the agent's terminal
// response.
func (t *Tool) classify(response *agentapi.Response, sessionID wire.SessionID) *wire.ToolResult {
	if t.enableHITL && response.Reason.IsSuspending() {
		return suspendedResult(response, sessionID)
	}
	return normalResult(response, sessionID)
}

func normalResult(response *agentapi.Response, sessionID wire.SessionID) *wire.ToolResult {
	text := responseText(response.Output)
	if text == "" {
		text = "(No response)"
	}
	return &wire.ToolResult{
		Output: []wire.ContentBlock{
			wire.TextBlock{Text: fmt.Sprintf("session_id: %s\n\n%s", sessionID, text)},
		},
	}
}

func suspendedResult(response *agentapi.Response, sessionID wire.SessionID) *wire.ToolResult {
	var output []wire.ContentBlock
	var toolUses []wire.ContentBlock
	for _, block := range response.Output {
		switch block.(type) {
		case wire.TextBlock:
			output = append(output, block)
		case wire.ToolUseBlock:
			toolUses = append(toolUses, block)
		}
	}
	output = append(output, toolUses...)
	return &wire.ToolResult{
		Output: output,
		Metadata: map[string]any{
			wire.MetaSuspended:         true,
			wire.MetaSubAgentSessionID: string(sessionID),
			wire.MetaGenerateReason:    response.Reason,
		},
	}
}

func responseText(output []wire.ContentBlock) string {
	var text string
	for _, block := range output {
		if tb, ok := block.(wire.TextBlock); ok {
			text += tb.Text
		}
	}
	return text
}

// loadState restores wrapped-agent state when the agent participates in the
// state protocol. Failures are logged, never fatal.
func (t *Tool) loadState(ctx context.Context, agent agentapi.Agent, sessionID wire.SessionID) {
	sm, ok := agent.(agentapi.StateModule)
	if !ok || t.session == nil {
		return
	}
	if err := sm.LoadFrom(ctx, t.session, string(sessionID)); err != nil && !errors.Is(err, session.ErrNotFound) {
		t.logger.Warn(ctx, "subagent: failed to load sub-agent state", "session_id", sessionID, "error", err)
	}
}

// saveState persists wrapped-agent state when the agent participates in the
// state protocol. Failures are logged, never fatal.
func (t *Tool) saveState(ctx context.Context, agent agentapi.Agent, sessionID wire.SessionID) {
	sm, ok := agent.(agentapi.StateModule)
	if !ok || t.session == nil {
		return
	}
	if err := sm.SaveTo(ctx, t.session, string(sessionID)); err != nil {
		t.logger.Warn(ctx, "subagent: failed to save sub-agent state", "session_id", sessionID, "error", err)
	}
}
