// Package coordinator implements CoordinatorContext: the thin façade owning
// one pending.Store plus the suspension-aware static helpers used to
// classify a result block without holding a coordinator reference.
package coordinator

import (
	"context"
	"errors"

	"goa.design/subagent/pending"
	"goa.design/subagent/session"
	"goa.design/subagent/wire"
)

// stateKey is the fixed logical key used to save/load a PendingStore
// snapshot in a session.Store.
const stateKey = "subagent_context"

// ErrUnknownOuterCall indicates submitSubAgentResult(s) was called for an
// outer call id with no registered session.
var ErrUnknownOuterCall = errors.New("coordinator: unknown outer tool call id")

// Option configures a Context at construction.
type Option func(*Context)

// WithStore supplies an existing pending.Store instead of a fresh one,
// letting callers share pending state across multiple SubAgentTool
// instances that are intentionally pooled together. There are no global
// singletons; sharing is always explicit.
func WithStore(store *pending.Store) Option {
	return func(c *Context) { c.store = store }
}

// WithSessionStore supplies the session.Store used for Save/Load.
func WithSessionStore(store session.Store) Option {
	return func(c *Context) { c.session = store }
}

// Context is a façade over one pending.Store with suspension-aware helpers.
// It is exclusively owned by the SubAgentTool (or tool set) it was created
// for.
type Context struct {
	store   *pending.Store
	session session.Store
}

// New constructs a Context. By default it owns a fresh pending.Store and has
// no session.Store configured (Save/Load will fail until WithSessionStore is
// supplied).
func New(opts ...Option) *Context {
	c := &Context{store: pending.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying PendingStore for direct use by InjectionHook.
func (c *Context) Store() *pending.Store { return c.store }

// SetSessionID registers sessionID for outerID, discarding any prior staged
// results for outerID (pending.Store.SetSessionID semantics).
func (c *Context) SetSessionID(outerID wire.OuterToolCallID, sessionID wire.SessionID) error {
	return c.store.SetSessionID(outerID, sessionID)
}

// SubmitSubAgentResult stages one inner tool result for outerID. Fails with
// ErrUnknownOuterCall if no session is registered for outerID.
func (c *Context) SubmitSubAgentResult(outerID wire.OuterToolCallID, result wire.InnerToolResult) error {
	return c.SubmitSubAgentResults(outerID, []wire.InnerToolResult{result})
}

// SubmitSubAgentResults stages inner tool results for outerID. Fails with
// ErrUnknownOuterCall if no session is registered for outerID, or
// pending.ErrInvalidArgument if outerID is empty or results is empty.
func (c *Context) SubmitSubAgentResults(outerID wire.OuterToolCallID, results []wire.InnerToolResult) error {
	if outerID == "" || len(results) == 0 {
		return pending.ErrInvalidArgument
	}
	if !c.store.Contains(outerID) {
		return ErrUnknownOuterCall
	}
	return c.store.AddResults(outerID, results)
}

// ConsumePendingResult atomically reads and removes the staged
// PendingContext for outerID, if any.
func (c *Context) ConsumePendingResult(outerID wire.OuterToolCallID) (wire.PendingContext, bool) {
	return c.store.Consume(outerID)
}

// ExtractSessionID returns the session id carried by result's metadata, if
// present as a non-empty string under wire.MetaSubAgentSessionID.
func ExtractSessionID(result wire.ToolResult) (wire.SessionID, bool) {
	if result.Metadata == nil {
		return "", false
	}
	v, ok := result.Metadata[wire.MetaSubAgentSessionID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return wire.SessionID(s), true
}

// IsSubAgentResult reports whether result originated from a sub-agent,
// equivalent to ExtractSessionID reporting a session id.
func IsSubAgentResult(result wire.ToolResult) bool {
	_, ok := ExtractSessionID(result)
	return ok
}

// TerminationReasonOf returns the TerminationReason carried by result's
// metadata, defaulting to wire.ModelStop when absent or of the wrong type.
func TerminationReasonOf(result wire.ToolResult) wire.TerminationReason {
	if result.Metadata == nil {
		return wire.ModelStop
	}
	v, ok := result.Metadata[wire.MetaGenerateReason]
	if !ok {
		return wire.ModelStop
	}
	reason, ok := v.(wire.TerminationReason)
	if !ok {
		return wire.ModelStop
	}
	return reason
}

// IsSuspended reports whether result carries the suspended marker.
// Suspension always implies sub-agent origin.
func IsSuspended(result wire.ToolResult) bool {
	if result.Metadata == nil {
		return false
	}
	v, _ := result.Metadata[wire.MetaSuspended].(bool)
	return v
}

// SaveState persists the underlying PendingStore's full contents under the
// fixed logical key "subagent_context". Save/load is whole-state replace,
// not merge.
func (c *Context) SaveState(ctx context.Context, key string) error {
	if c.session == nil {
		return errors.New("coordinator: no session store configured")
	}
	return c.session.Save(ctx, key, stateKey, c.store.Snapshot())
}

// LoadState replaces the underlying PendingStore's contents with the
// snapshot stored under the fixed logical key "subagent_context". If nothing
// was previously saved under key, the store is emptied and nil is returned.
func (c *Context) LoadState(ctx context.Context, key string) error {
	if c.session == nil {
		return errors.New("coordinator: no session store configured")
	}
	var snapshot []wire.PendingContext
	err := c.session.Get(ctx, key, stateKey, &snapshot)
	if errors.Is(err, session.ErrNotFound) {
		c.store.Restore(nil)
		return nil
	}
	if err != nil {
		return err
	}
	c.store.Restore(snapshot)
	return nil
}
