package idpkit

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/idpkit/normalize"
	"github.com/dmitrymomot/idpkit/statemachine"
	"github.com/dmitrymomot/idpkit/store"
)

// Adapter drives one provider's authorization-code flow for one logical user
// session. It presents the uniform caller-facing contract regardless of the
// provider behind it.
//
// Adapters are cheap to construct: the HTTP layer typically creates one per
// request from the session key and calls Initialize, which rehydrates any
// in-flight flow or existing token from the store.
type Adapter struct {
	provider   Provider
	store      store.Store
	sessionKey string
	logger     *slog.Logger

	sm *statemachine.Machine

	// Transient only; the store owns the token for the session lifetime.
	token Token
	// Nonce generated by BeginAuth, persisted by the begin transition action.
	pendingNonce string
}

// Option configures an Adapter during construction.
type Option func(*Adapter)

// WithLogger configures the adapter's logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New constructs an adapter for the given provider, store, and session key.
// Call Initialize before anything else.
func New(provider Provider, st store.Store, sessionKey string, opts ...Option) *Adapter {
	a := &Adapter{
		provider:   provider,
		store:      st,
		sessionKey: sessionKey,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.sm = statemachine.MustNew(StateUninitialized,
		statemachine.Transition{
			From: StateInitialized, To: StateAwaitingCallback, Event: eventBegin,
			Actions: []statemachine.Action{a.persistNonce},
		},
		statemachine.Transition{
			From: StateAwaitingCallback, To: StateAwaitingCallback, Event: eventBegin,
			Actions: []statemachine.Action{a.persistNonce},
		},
		statemachine.Transition{
			From: StateFailed, To: StateAwaitingCallback, Event: eventBegin,
			Actions: []statemachine.Action{a.persistNonce},
		},
		statemachine.Transition{
			From: StateAwaitingCallback, To: StateAuthenticated, Event: eventSucceed,
			Actions: []statemachine.Action{a.persistToken},
		},
		statemachine.Transition{
			From: StateAwaitingCallback, To: StateFailed, Event: eventFail,
		},
		statemachine.Transition{
			From: StateAuthenticated, To: StateInitialized, Event: eventLogout,
			Actions: []statemachine.Action{a.clearArtifacts},
		},
		statemachine.Transition{
			From: StateAwaitingCallback, To: StateInitialized, Event: eventLogout,
			Actions: []statemachine.Action{a.clearArtifacts},
		},
		statemachine.Transition{
			From: StateFailed, To: StateInitialized, Event: eventLogout,
			Actions: []statemachine.Action{a.clearArtifacts},
		},
	)

	return a
}

// Provider returns the provider behind this adapter.
func (a *Adapter) Provider() Provider { return a.provider }

// SessionKey returns the session key scoping the adapter's stored artifacts.
func (a *Adapter) SessionKey() string { return a.sessionKey }

// State returns the adapter's current flow state.
func (a *Adapter) State() State { return State(a.sm.Current().Name()) }

// Token returns the transient token reference. Zero unless authenticated.
func (a *Adapter) Token() Token { return a.token }

// Initialize validates the provider's mandatory credentials and rehydrates
// the flow from the store: an existing valid token moves the adapter straight
// to Authenticated without a redirect round trip, and a pending state nonce
// resumes an in-flight flow at AwaitingCallback (the callback leg may run in
// a process that never saw BeginAuth).
//
// It fails with ErrMissingCredentials when the client id or secret is absent.
// Calling Initialize on an already initialized adapter re-runs rehydration.
func (a *Adapter) Initialize(ctx context.Context) error {
	if err := a.provider.Config().Validate(); err != nil {
		return err
	}
	if a.sessionKey == "" {
		return store.ErrEmptySessionKey
	}

	if err := a.sm.SetState(StateInitialized); err != nil {
		return err
	}

	token, err := a.readToken(ctx)
	switch {
	case err == nil && token.Valid():
		a.token = token
		if err := a.sm.SetState(StateAuthenticated); err != nil {
			return err
		}
		a.logger.DebugContext(ctx, "rehydrated existing token",
			slog.String("provider", a.provider.Name()))
		return nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return err
	}

	if _, err := a.store.Get(ctx, a.sessionKey, fieldNonce); err == nil {
		return a.sm.SetState(StateAwaitingCallback)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}

// BeginAuth starts (or restarts) the authorization flow: it generates a fresh
// one-time state nonce, persists it, and returns the provider's authorization
// URL for the transport layer to redirect to. Idempotent under re-invocation
// while a flow is pending — each call issues a new nonce and URL.
func (a *Adapter) BeginAuth(ctx context.Context) (string, error) {
	switch {
	case a.sm.Is(StateUninitialized):
		return "", ErrNotInitialized
	case a.sm.Is(StateAuthenticated):
		return "", ErrAlreadyAuthenticated
	}

	nonce, err := generateNonce(32)
	if err != nil {
		return "", fmt.Errorf("idpkit: generate state nonce: %w", err)
	}

	url, err := a.provider.BuildAuthURL(nonce)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthorizationURL, err)
	}

	a.pendingNonce = nonce
	if err := a.sm.Fire(ctx, eventBegin); err != nil {
		return "", err
	}

	a.logger.InfoContext(ctx, "authorization flow started",
		slog.String("provider", a.provider.Name()))
	return url, nil
}

// FinishAuth consumes the callback of the redirect flow: it validates the
// one-time state nonce, exchanges the authorization code for a token, stores
// the token, and moves the adapter to Authenticated.
//
// The authorization code is consumed exactly once. A second FinishAuth on an
// authenticated adapter fails with ErrAlreadyAuthenticated. A denied consent
// maps to ErrAuthDenied, any exchange failure to ErrAuthExchangeFailed; both
// leave the adapter in Failed, recoverable by restarting BeginAuth.
func (a *Adapter) FinishAuth(ctx context.Context, cb Callback) (Token, error) {
	switch {
	case a.sm.Is(StateAuthenticated):
		return Token{}, ErrAlreadyAuthenticated
	case a.sm.Is(StateUninitialized):
		return Token{}, ErrNotInitialized
	case !a.sm.Is(StateAwaitingCallback):
		return Token{}, ErrNoPendingAuth
	}

	nonce, err := a.store.Get(ctx, a.sessionKey, fieldNonce)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.fail(ctx)
			return Token{}, ErrNoPendingAuth
		}
		return Token{}, err
	}
	// One-time consumption, regardless of the outcome below.
	if err := a.store.Delete(ctx, a.sessionKey, fieldNonce); err != nil {
		return Token{}, err
	}

	if cb.Denied() {
		a.fail(ctx)
		a.logger.InfoContext(ctx, "user denied the login request",
			slog.String("provider", a.provider.Name()))
		return Token{}, ErrAuthDenied
	}
	if cb.State == "" || cb.State != nonce {
		a.fail(ctx)
		return Token{}, ErrStateMismatch
	}

	token, err := a.provider.Exchange(ctx, cb)
	if err != nil {
		a.fail(ctx)
		a.logger.WarnContext(ctx, "authorization code exchange failed",
			slog.String("provider", a.provider.Name()),
			slog.Any("error", err))
		return Token{}, fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	if token.AccessToken == "" {
		a.fail(ctx)
		return Token{}, fmt.Errorf("%w: provider returned an empty access token", ErrAuthExchangeFailed)
	}

	a.token = token
	if err := a.sm.Fire(ctx, eventSucceed); err != nil {
		a.token = Token{}
		return Token{}, err
	}

	a.logger.InfoContext(ctx, "authorization flow finished",
		slog.String("provider", a.provider.Name()))
	return token, nil
}

// Logout clears the stored token and returns the adapter to Initialized.
// A no-op when there is nothing to log out from.
func (a *Adapter) Logout(ctx context.Context) error {
	if a.sm.Is(StateUninitialized) {
		return ErrNotInitialized
	}
	if err := a.sm.Fire(ctx, eventLogout); err != nil {
		if statemachine.IsNoTransition(err) {
			return nil
		}
		return err
	}
	return nil
}

// Profile fetches the raw profile payload from the provider and normalizes it
// into the canonical schema. Callable only while Authenticated; a missing
// upstream identifier surfaces as normalize.ErrMissingIdentifier and should
// be treated as an authentication failure.
func (a *Adapter) Profile(ctx context.Context) (normalize.Profile, error) {
	token, err := a.currentToken(ctx)
	if err != nil {
		return normalize.Profile{}, err
	}

	payload, err := a.provider.FetchProfile(ctx, token)
	if err != nil {
		return normalize.Profile{}, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}

	return a.provider.Normalize(payload, token)
}

// fail moves the adapter to Failed, tolerating races where the state already
// moved on.
func (a *Adapter) fail(ctx context.Context) {
	if err := a.sm.Fire(ctx, eventFail); err != nil && !statemachine.IsNoTransition(err) {
		a.logger.WarnContext(ctx, "failed to mark flow as failed", slog.Any("error", err))
	}
}

// currentToken returns the token backing the authenticated session, reading
// through to the store when the adapter instance has no transient copy.
func (a *Adapter) currentToken(ctx context.Context) (Token, error) {
	if !a.sm.Is(StateAuthenticated) {
		return Token{}, ErrNotAuthenticated
	}
	if a.token.AccessToken != "" {
		return a.token, nil
	}

	token, err := a.readToken(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrNotAuthenticated
		}
		return Token{}, err
	}
	a.token = token
	return token, nil
}

// Transition actions. Each runs before the state change and blocks it on
// store failure, keeping persisted state consistent with the machine.

func (a *Adapter) persistNonce(ctx context.Context, _, _ statemachine.State, _ statemachine.Event) error {
	return a.store.Set(ctx, a.sessionKey, fieldNonce, a.pendingNonce)
}

func (a *Adapter) persistToken(ctx context.Context, _, _ statemachine.State, _ statemachine.Event) error {
	if err := a.store.Set(ctx, a.sessionKey, fieldAccessToken, a.token.AccessToken); err != nil {
		return err
	}
	if a.token.Expiry.IsZero() {
		return a.store.Delete(ctx, a.sessionKey, fieldTokenExpiry)
	}
	return a.store.Set(ctx, a.sessionKey, fieldTokenExpiry, a.token.Expiry.Format(time.RFC3339))
}

func (a *Adapter) clearArtifacts(ctx context.Context, _, _ statemachine.State, _ statemachine.Event) error {
	if err := a.store.Delete(ctx, a.sessionKey, fieldAccessToken, fieldTokenExpiry, fieldNonce); err != nil {
		return err
	}
	a.token = Token{}
	a.pendingNonce = ""
	return nil
}

func (a *Adapter) readToken(ctx context.Context) (Token, error) {
	accessToken, err := a.store.Get(ctx, a.sessionKey, fieldAccessToken)
	if err != nil {
		return Token{}, err
	}

	token := Token{AccessToken: accessToken}
	expiry, err := a.store.Get(ctx, a.sessionKey, fieldTokenExpiry)
	switch {
	case err == nil:
		parsed, parseErr := time.Parse(time.RFC3339, expiry)
		if parseErr == nil {
			token.Expiry = parsed
		}
	case !errors.Is(err, store.ErrNotFound):
		return Token{}, err
	}
	return token, nil
}

// generateNonce returns a random base64url-encoded string for CSRF
// protection of the redirect flow.
func generateNonce(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
