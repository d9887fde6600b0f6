package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idpkit"
	"github.com/dmitrymomot/idpkit/providers/google"
)

func testConfig() google.Config {
	return google.Config{
		ClientID:     "g-client",
		ClientSecret: "g-secret",
		RedirectURL:  "https://app.example.com/auth/google/callback",
	}
}

func TestProvider_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "google", google.New(testConfig()).Name())
}

func TestProvider_BuildAuthURL(t *testing.T) {
	t.Parallel()

	p := google.New(testConfig())
	raw, err := p.BuildAuthURL("nonce-7")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "nonce-7", q.Get("state"))
	assert.Equal(t, "g-client", q.Get("client_id"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestProvider_FetchProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer live-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "108331",
			"email": "Jane.Roe@gmail.com",
			"name": "Jane Roe",
			"given_name": "Jane",
			"family_name": "Roe",
			"picture": "https://lh3.googleusercontent.com/photo.jpg",
			"locale": "en"
		}`))
	}))
	t.Cleanup(srv.Close)

	p := google.New(testConfig(), google.WithUserInfoURL(srv.URL))
	payload, err := p.FetchProfile(context.Background(), idpkit.Token{AccessToken: "live-token"})
	require.NoError(t, err)

	profile, err := p.Normalize(payload, idpkit.Token{AccessToken: "live-token"})
	require.NoError(t, err)

	assert.Equal(t, "108331", profile.Identifier)
	assert.Equal(t, "Jane Roe", profile.DisplayName)
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Equal(t, "Roe", profile.LastName)
	assert.Equal(t, "jane.roe@gmail.com", profile.Email)
	assert.Equal(t, "https://lh3.googleusercontent.com/photo.jpg", profile.PhotoURL,
		"photo comes straight from the payload")
	assert.Equal(t, "en", profile.Language)
}

func TestProvider_FetchProfile_Error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	p := google.New(testConfig(), google.WithUserInfoURL(srv.URL))
	_, err := p.FetchProfile(context.Background(), idpkit.Token{AccessToken: "stale"})
	require.Error(t, err)
}
