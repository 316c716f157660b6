// Package storage provides abstractions for persistent state storage.
package storage

import "context"

// StateKey is the well-known key the whole domain state document lives under.
const StateKey = "lifeone-app-state"

// Store persists the domain state as one opaque JSON document. Persistence is
// best-effort: a failed save is logged by the caller and the in-memory state
// keeps operating. This abstraction allows swapping storage backends (SQLite,
// a remote KV store, ...) without changing the service layer.
type Store interface {
	// Load reads the state document. The second return is false when no
	// document has ever been saved.
	Load(ctx context.Context) ([]byte, bool, error)

	// Save writes the state document, replacing any previous one.
	Save(ctx context.Context, doc []byte) error

	// Close releases any resources held by the store.
	Close() error
}
