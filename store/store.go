package store

import "context"

// Store persists auth artifacts across the two legs of a redirect flow. Keys
// are scoped by session: one sessionKey per logical user session, with named
// fields underneath (the state nonce, the access token, ...).
//
// Implementations must provide read-after-write consistency per session key:
// a Get following a Set or Delete for the same key observes that write, even
// when the two legs of the flow are handled by different process instances.
type Store interface {
	// Get retrieves a field. It returns ErrNotFound when either the session
	// or the field is absent.
	Get(ctx context.Context, sessionKey, field string) (string, error)

	// Set writes a field, creating the session entry if needed.
	Set(ctx context.Context, sessionKey, field, value string) error

	// Delete removes the given fields. Missing fields are not an error.
	Delete(ctx context.Context, sessionKey string, fields ...string) error

	// Clear removes the whole session entry.
	Clear(ctx context.Context, sessionKey string) error
}
