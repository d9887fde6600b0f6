package idpkit

import "errors"

// Configuration errors, fatal at Initialize.
var (
	ErrMissingCredentials = errors.New("idpkit: client id and client secret are required")
)

// Authorization flow errors.
var (
	// ErrAuthorizationURL indicates the upstream provider could not build a
	// redirect URL. The login attempt is aborted.
	ErrAuthorizationURL = errors.New("idpkit: unable to build authorization url")

	// ErrAuthDenied indicates the end user declined consent. Recoverable,
	// callers should allow a retry.
	ErrAuthDenied = errors.New("idpkit: user denied the login request")

	// ErrAuthExchangeFailed indicates a network or upstream failure during the
	// authorization code exchange. Recoverable by restarting BeginAuth.
	ErrAuthExchangeFailed = errors.New("idpkit: authorization code exchange failed")

	// ErrAlreadyAuthenticated indicates FinishAuth was invoked on an already
	// authenticated adapter. The authorization code is consumed exactly once;
	// a second FinishAuth is programmer misuse, not a user-facing condition.
	ErrAlreadyAuthenticated = errors.New("idpkit: adapter is already authenticated")

	// ErrNoPendingAuth indicates FinishAuth was invoked without a preceding
	// BeginAuth for the session.
	ErrNoPendingAuth = errors.New("idpkit: no authorization flow in progress")

	// ErrStateMismatch indicates the callback state nonce did not match the
	// one issued by BeginAuth, or was already consumed.
	ErrStateMismatch = errors.New("idpkit: callback state does not match")
)

// Post-authentication errors.
var (
	ErrNotInitialized     = errors.New("idpkit: adapter is not initialized")
	ErrNotAuthenticated   = errors.New("idpkit: adapter is not authenticated")
	ErrProfileFetchFailed = errors.New("idpkit: user profile request failed")
)
