// Package pending implements PendingStore: the thread-safe mapping from
// outer tool-call id to staged pending context that backs the coordinator's
// suspension/resumption protocol.
package pending

import (
	"errors"
	"sync"

	"goa.design/subagent/wire"
)

// Sentinel errors for programmatic misuse. These surface at the call site;
// they never reach a tool result.
var (
	// ErrInvalidArgument indicates a null/blank identifier or nil result was
	// passed to a Store method.
	ErrInvalidArgument = errors.New("pending: invalid argument")
	// ErrMissingSession indicates AddResult/AddResults was called for an
	// outer call id with no prior SetSessionID.
	ErrMissingSession = errors.New("pending: no session registered for outer call id")
)

// Store is the thread-safe outerToolCallId to PendingContext map backing the
// suspension/resumption protocol. All public operations are atomic at method
// granularity.
type Store struct {
	mu      sync.Mutex
	entries map[wire.OuterToolCallID]wire.PendingContext
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[wire.OuterToolCallID]wire.PendingContext)}
}

// SetSessionID creates or replaces the entry for id with an empty result
// list bound to sessionID. Setting a different sessionID on an existing id
// discards any prior staged results (lifecycle restart).
func (s *Store) SetSessionID(id wire.OuterToolCallID, sessionID wire.SessionID) error {
	if id == "" || sessionID == "" {
		return ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = wire.PendingContext{OuterToolCallID: id, SessionID: sessionID}
	return nil
}

// AddResult appends result to the entry's list for id, preserving order.
// Fails with ErrMissingSession if no entry exists for id.
func (s *Store) AddResult(id wire.OuterToolCallID, result wire.InnerToolResult) error {
	return s.AddResults(id, []wire.InnerToolResult{result})
}

// AddResults appends results to the entry's list for id, preserving order.
// Fails with ErrMissingSession if no entry exists for id, or ErrInvalidArgument
// if id is empty or results is empty.
func (s *Store) AddResults(id wire.OuterToolCallID, results []wire.InnerToolResult) error {
	if id == "" || len(results) == 0 {
		return ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return ErrMissingSession
	}
	merged := make([]wire.InnerToolResult, 0, len(entry.PendingResults)+len(results))
	merged = append(merged, entry.PendingResults...)
	merged = append(merged, results...)
	entry.PendingResults = merged
	s.entries[id] = entry
	return nil
}

// GetSessionID returns the session id registered for id, if any.
func (s *Store) GetSessionID(id wire.OuterToolCallID) (wire.SessionID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return "", false
	}
	return entry.SessionID, true
}

// GetPendingResults returns a defensive copy of the ordered result list
// staged for id. Returns an empty, non-nil slice when id is unknown or has
// no staged results; mutating the returned slice never affects the store.
func (s *Store) GetPendingResults(id wire.OuterToolCallID) []wire.InnerToolResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || len(entry.PendingResults) == 0 {
		return []wire.InnerToolResult{}
	}
	out := make([]wire.InnerToolResult, len(entry.PendingResults))
	copy(out, entry.PendingResults)
	return out
}

// Contains reports whether an entry (a registered session id) exists for id.
func (s *Store) Contains(id wire.OuterToolCallID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// HasPendingResults reports whether id has a non-empty staged result list.
func (s *Store) HasPendingResults(id wire.OuterToolCallID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	return ok && len(entry.PendingResults) > 0
}

// Remove atomically deletes the entry for id, returning the prior
// PendingContext if one existed.
func (s *Store) Remove(id wire.OuterToolCallID) (wire.PendingContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return wire.PendingContext{}, false
	}
	delete(s.entries, id)
	return entry, true
}

// Consume atomically reads and removes the entry for id. It returns the same
// result as Remove; Consume is the name used by callers draining staged
// results for resumption.
func (s *Store) Consume(id wire.OuterToolCallID) (wire.PendingContext, bool) {
	return s.Remove(id)
}

// ClearAll drops every entry from the store.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[wire.OuterToolCallID]wire.PendingContext)
}

// Snapshot captures the store's full contents for save-to-session. The
// returned slice is a defensive copy; mutating it never affects the store.
func (s *Store) Snapshot() []wire.PendingContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wire.PendingContext, 0, len(s.entries))
	for _, entry := range s.entries {
		results := make([]wire.InnerToolResult, len(entry.PendingResults))
		copy(results, entry.PendingResults)
		entry.PendingResults = results
		out = append(out, entry)
	}
	return out
}

// Restore replaces the store's full contents with snapshot. This is a
// whole-state replace, not a merge: any entries not present in snapshot are
// dropped.
func (s *Store) Restore(snapshot []wire.PendingContext) {
	entries := make(map[wire.OuterToolCallID]wire.PendingContext, len(snapshot))
	for _, entry := range snapshot {
		results := make([]wire.InnerToolResult, len(entry.PendingResults))
		copy(results, entry.PendingResults)
		entry.PendingResults = results
		entries[entry.OuterToolCallID] = entry
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}
