package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/idpkit"
	"github.com/dmitrymomot/idpkit/store"
)

const defaultCookieName = "idpkit_session"

// Handler exposes the broker's authentication flow over HTTP. Each provider
// is mounted under its name: /{provider}/login, /{provider}/callback,
// /{provider}/logout and /{provider}/profile.
type Handler struct {
	providers  map[string]idpkit.Provider
	store      store.Store
	logger     *slog.Logger
	cookieName string
	secure     bool
}

// Option configures the handler.
type Option func(*Handler)

// WithLogger sets the logger used for request-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.cookieName = name
		}
	}
}

// WithSecureCookies marks session cookies as Secure. Enable behind TLS.
func WithSecureCookies(secure bool) Option {
	return func(h *Handler) { h.secure = secure }
}

// New creates a handler serving the given providers backed by st.
func New(st store.Store, providers []idpkit.Provider, opts ...Option) *Handler {
	h := &Handler{
		providers:  make(map[string]idpkit.Provider, len(providers)),
		store:      st,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		cookieName: defaultCookieName,
	}
	for _, p := range providers {
		h.providers[p.Name()] = p
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the chi router with all provider routes mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/{provider}", func(r chi.Router) {
		r.Get("/login", h.login)
		r.Get("/callback", h.callback)
		r.Get("/logout", h.logout)
		r.Get("/profile", h.profile)
	})
	return r
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.adapterFor(w, r)
	if !ok {
		return
	}

	if err := adapter.Initialize(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}

	url, err := adapter.BeginAuth(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.adapterFor(w, r)
	if !ok {
		return
	}

	if err := adapter.Initialize(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}

	q := r.URL.Query()
	token, err := adapter.FinishAuth(r.Context(), idpkit.Callback{
		Code:  q.Get("code"),
		State: q.Get("state"),
		Error: q.Get("error"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"provider":      adapter.Provider().Name(),
		"authenticated": true,
		"token_expiry":  token.Expiry,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.adapterFor(w, r)
	if !ok {
		return
	}

	if err := adapter.Initialize(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := adapter.Logout(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.adapterFor(w, r)
	if !ok {
		return
	}

	if err := adapter.Initialize(r.Context()); err != nil {
		h.renderError(w, r, err)
		return
	}

	profile, err := adapter.Profile(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, profile)
}

// adapterFor resolves the provider from the URL and builds a per-request
// adapter keyed by the session cookie. A missing cookie mints a new session.
func (h *Handler) adapterFor(w http.ResponseWriter, r *http.Request) (*idpkit.Adapter, bool) {
	name := chi.URLParam(r, "provider")
	provider, ok := h.providers[name]
	if !ok {
		renderJSON(w, http.StatusNotFound, errorBody("unknown_provider", "unknown provider: "+name))
		return nil, false
	}

	key := h.sessionKey(w, r)
	adapter := idpkit.New(provider, h.store, key, idpkit.WithLogger(h.logger))
	return adapter, true
}

func (h *Handler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, idpkit.ErrAuthDenied):
		status, code = http.StatusForbidden, "auth_denied"
	case errors.Is(err, idpkit.ErrStateMismatch):
		status, code = http.StatusForbidden, "state_mismatch"
	case errors.Is(err, idpkit.ErrAlreadyAuthenticated):
		status, code = http.StatusConflict, "already_authenticated"
	case errors.Is(err, idpkit.ErrNoPendingAuth):
		status, code = http.StatusConflict, "no_pending_auth"
	case errors.Is(err, idpkit.ErrNotAuthenticated):
		status, code = http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, idpkit.ErrMissingCredentials):
		status, code = http.StatusInternalServerError, "misconfigured_provider"
	case errors.Is(err, idpkit.ErrAuthExchangeFailed):
		status, code = http.StatusBadGateway, "exchange_failed"
	case errors.Is(err, idpkit.ErrProfileFetchFailed):
		status, code = http.StatusBadGateway, "profile_fetch_failed"
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("code", code),
		slog.Any("error", err),
	)
	renderJSON(w, status, errorBody(code, err.Error()))
}
