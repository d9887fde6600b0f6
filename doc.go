// Package idpkit is an identity-provider adapter broker: it authenticates end
// users against third-party OAuth2 identity providers through a single uniform
// contract, regardless of each provider's quirks.
//
// The package is built around three pieces:
//
//   - Provider implementations encapsulate everything upstream-specific: how
//     to build an authorization URL, how to exchange the callback code for a
//     token, how to fetch the raw profile payload, and how to map that payload
//     into the canonical profile schema (see the normalize package).
//   - Adapter drives the authorization-code flow across the two independent
//     HTTP requests of a redirect flow. Flow artifacts (the CSRF state nonce
//     and the access token) are persisted through a store.Store so the
//     callback leg can be handled by a different process instance.
//   - Capability is a tagged result for optional social-graph operations
//     (contacts, status, pages, activity). A provider that cannot perform an
//     operation yields Unsupported — a first-class outcome, never an error and
//     never an empty collection indistinguishable from real empty data.
//
// # Basic Usage
//
//	var cfg facebook.Config
//	config.MustLoad(&cfg)
//
//	provider := facebook.New(cfg)
//	sessions := store.NewMemoryStore(5 * time.Minute)
//
//	adapter := idpkit.New(provider, sessions, sessionKey,
//		idpkit.WithLogger(log),
//	)
//	if err := adapter.Initialize(ctx); err != nil {
//		// ErrMissingCredentials: fatal configuration problem
//	}
//
//	// First leg: send the user to the provider.
//	url, err := adapter.BeginAuth(ctx)
//	if err != nil {
//		// ErrAuthorizationURL: upstream could not build a redirect URL
//	}
//	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
//
//	// Second leg, on the callback request (possibly another process):
//	token, err := adapter.FinishAuth(ctx, idpkit.Callback{
//		Code:  r.URL.Query().Get("code"),
//		State: r.URL.Query().Get("state"),
//		Error: r.URL.Query().Get("error"),
//	})
//
//	profile, err := adapter.Profile(ctx)
//
// # Error Handling
//
// All upstream SDK failures are remapped into the package's sentinel errors at
// the flow boundary, so callers can distinguish "retry the login"
// (ErrAuthDenied, ErrAuthExchangeFailed) from "fatal configuration problem"
// (ErrMissingCredentials) from "feature unsupported" (a Capability tag):
//
//	token, err := adapter.FinishAuth(ctx, cb)
//	switch {
//	case errors.Is(err, idpkit.ErrAuthDenied):
//		// user declined consent, offer to retry
//	case errors.Is(err, idpkit.ErrAuthExchangeFailed):
//		// transient upstream failure, restart BeginAuth
//	case errors.Is(err, idpkit.ErrAlreadyAuthenticated):
//		// programmer misuse: the code was already consumed
//	}
//
// # Concurrency
//
// One Adapter instance serves one logical user session. Instances carry no
// thread-safety guarantee for concurrent method calls; callers must serialize
// calls per instance (e.g. one instance per HTTP request). The store is the
// only shared resource and must provide read-after-write consistency per
// session key.
package idpkit
