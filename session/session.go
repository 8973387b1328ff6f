// Package session defines the durable state-store contract used by the
// coordinator for two distinct concerns: persisting PendingStore snapshots
// under the fixed logical key "subagent_context", and persisting/restoring
// wrapped-agent state under an agent-chosen key. The concrete backend (in
// memory here, file- or database-backed in a real deployment) is supplied by
// the embedding application.
package session

import (
	"context"
	"errors"
)

// Store persists opaque, JSON-compatible state under a (key, logicalName)
// pair. Implementations must be safe for concurrent use: the coordinator may
// be shared across many invocations in the same process.
type Store interface {
	// Save stores value under (key, logicalName), replacing any prior value.
	Save(ctx context.Context, key, logicalName string, value any) error
	// Get loads the value stored under (key, logicalName) into dst, a pointer
	// to the expected type. Returns ErrNotFound if nothing is stored there.
	Get(ctx context.Context, key, logicalName string, dst any) error
}

// ErrNotFound indicates no value is stored under the requested (key,
// logicalName) pair.
var ErrNotFound = errors.New("session: state not found")
