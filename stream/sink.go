// Package stream implements reactive forwarding of intermediate sub-agent
// events onto an outer-loop sink, out of band from the tool call's single
// final return value.
package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"goa.design/subagent/agentapi"
	"goa.design/subagent/telemetry"
	"goa.design/subagent/wire"
)

// Sink receives forwarded streaming chunks produced while a sub-agent call
// is in flight. Implementations are supplied by the parent agent loop; a nil
// Sink disables forwarding entirely.
type Sink interface {
	// Forward delivers one chunk. Sink implementations decide how to surface
	// it (e.g. append to a transcript, push to a UI channel).
	Forward(ctx context.Context, chunk wire.ToolResult) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, chunk wire.ToolResult) error

// Forward implements Sink.
func (f SinkFunc) Forward(ctx context.Context, chunk wire.ToolResult) error {
	return f(ctx, chunk)
}

// Chunk builds the wire.ToolResult forwarded for one agentapi.Event: a
// single text block carrying the JSON serialization of event, annotated with
// the stream metadata keys so a consumer can correlate it back to the
// originating sub-agent session and agent without inspecting Payload.
// Returns an error if event does not serialize to JSON; ForwardEvent logs
// and swallows it rather than propagating it to the caller of Invoke.
func Chunk(event agentapi.Event, agentName string, sessionID wire.SessionID) (wire.ToolResult, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return wire.ToolResult{}, fmt.Errorf("marshal subagent event: %w", err)
	}
	return wire.ToolResult{
		ID:     event.ID,
		Name:   event.Name,
		Output: []wire.ContentBlock{wire.TextBlock{Text: string(raw)}},
		Metadata: map[string]any{
			wire.MetaStreamEvent:     event.Name,
			wire.MetaStreamName:      agentName,
			wire.MetaStreamID:        event.ID,
			wire.MetaStreamSessionID: string(sessionID),
		},
	}, nil
}

// Forward delivers chunk to sink if sink is non-nil, logging and swallowing
// any delivery error: a forwarding failure must never abort the sub-agent
// call or surface as the tool result's own error.
func Forward(ctx context.Context, sink Sink, logger telemetry.Logger, chunk wire.ToolResult) {
	if sink == nil {
		return
	}
	if err := sink.Forward(ctx, chunk); err != nil {
		if logger != nil {
			logger.Warn(ctx, "subagent: dropped stream chunk", "error", err, "event_id", chunk.ID)
		}
	}
}

// ForwardEvent builds the chunk for event and delivers it to sink. If event
// fails to serialize, the failure is logged and the chunk is dropped rather
// than propagated: forwarding is best-effort and never fails the call.
func ForwardEvent(ctx context.Context, sink Sink, logger telemetry.Logger, event agentapi.Event, agentName string, sessionID wire.SessionID) {
	if sink == nil {
		return
	}
	chunk, err := Chunk(event, agentName, sessionID)
	if err != nil {
		if logger != nil {
			logger.Warn(ctx, "subagent: dropped stream chunk: failed to serialize event", "error", err, "event_id", event.ID)
		}
		return
	}
	Forward(ctx, sink, logger, chunk)
}
