package idpkit

import (
	"context"

	"github.com/dmitrymomot/idpkit/normalize"
)

// Provider is the upstream IdP SDK collaborator. Implementations encapsulate
// all provider-specific details; the Adapter never talks to a provider's wire
// protocol directly.
//
// Optional social-graph operations are expressed as separate interfaces
// (ContactsProvider, StatusWriter, ...) probed via type assertion. A provider
// that does not implement one is reported as Unsupported by the Adapter.
type Provider interface {
	// Name returns the provider identifier, e.g. "facebook".
	Name() string

	// Config returns the provider's effective configuration.
	Config() Config

	// BuildAuthURL returns the authorization URL carrying the given state
	// nonce. It does not perform network I/O for OAuth2 providers, but may
	// fail when the configuration cannot produce a URL.
	BuildAuthURL(state string) (string, error)

	// Exchange trades the callback authorization code for an access token.
	Exchange(ctx context.Context, cb Callback) (Token, error)

	// FetchProfile retrieves the raw, provider-shaped profile payload.
	FetchProfile(ctx context.Context, token Token) (normalize.Payload, error)

	// Normalize maps a raw payload into the canonical profile schema. The
	// token is needed for derived fields computed from the access token.
	Normalize(payload normalize.Payload, token Token) (normalize.Profile, error)
}

// ContactsProvider is implemented by providers that expose a contact list.
type ContactsProvider interface {
	Contacts(ctx context.Context, token Token) ([]Contact, error)
}

// StatusWriter is implemented by providers that can publish a status update,
// optionally on a page the user manages. It returns the created status so
// callers can link to the new post.
type StatusWriter interface {
	SetStatus(ctx context.Context, token Token, status, pageID string) (Status, error)
}

// StatusReader is implemented by providers that can fetch a status by id.
type StatusReader interface {
	Status(ctx context.Context, token Token, postID string) (Status, error)
}

// PagesProvider is implemented by providers that expose pages the user
// manages.
type PagesProvider interface {
	Pages(ctx context.Context, token Token, writableOnly bool) ([]Page, error)
}

// ActivityProvider is implemented by providers that expose an activity feed.
type ActivityProvider interface {
	Activity(ctx context.Context, token Token, stream ActivityStream) ([]Activity, error)
}
