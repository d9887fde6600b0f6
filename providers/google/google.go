package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/dmitrymomot/idpkit"
	"github.com/dmitrymomot/idpkit/normalize"
)

const Name = "google"

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Config holds configuration for the Google provider.
type Config struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
}

// Provider implements idpkit.Provider against Google's userinfo endpoint.
// Google exposes no optional social-graph capabilities here.
type Provider struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// Option configures the provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client used for profile fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithUserInfoURL overrides the userinfo endpoint, for tests.
func WithUserInfoURL(url string) Option {
	return func(p *Provider) {
		if url != "" {
			p.userInfoURL = url
		}
	}
}

// New creates a Google provider.
func New(cfg Config, opts ...Option) *Provider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}

	p := &Provider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoints.Google,
		},
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userInfoURL: defaultUserInfoURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Config() idpkit.Config {
	return idpkit.Config{
		ClientID:     p.conf.ClientID,
		ClientSecret: p.conf.ClientSecret,
		RedirectURL:  p.conf.RedirectURL,
		Scopes:       p.conf.Scopes,
	}
}

// BuildAuthURL returns the Google consent URL carrying the state nonce.
func (p *Provider) BuildAuthURL(state string) (string, error) {
	if p.conf.RedirectURL == "" {
		return "", fmt.Errorf("google: redirect url is not configured")
	}
	return p.conf.AuthCodeURL(state), nil
}

// Exchange trades the callback code for an access token.
func (p *Provider) Exchange(ctx context.Context, cb idpkit.Callback) (idpkit.Token, error) {
	tok, err := p.conf.Exchange(ctx, cb.Code)
	if err != nil {
		return idpkit.Token{}, fmt.Errorf("google: exchange code: %w", err)
	}
	return idpkit.Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// FetchProfile requests the user's profile from the userinfo endpoint.
func (p *Provider) FetchProfile(ctx context.Context, token idpkit.Token) (normalize.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: userinfo returned status %d", resp.StatusCode)
	}

	var payload normalize.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Normalize maps a userinfo payload into the canonical schema. Google serves
// the photo URL directly in the payload, so no URL templates apply.
func (p *Provider) Normalize(payload normalize.Payload, token idpkit.Token) (normalize.Profile, error) {
	profile, err := normalize.Normalize(payload, normalize.Mapping{
		Identifier:  "id",
		DisplayName: "name",
		FirstName:   "given_name",
		LastName:    "family_name",
		ProfileURL:  "link",
		Gender:      "gender",
		Language:    "locale",
		Email:       "email",
	}, normalize.URLTemplates{}, token.AccessToken)
	if err != nil {
		return normalize.Profile{}, err
	}
	profile.PhotoURL = payload.String("picture")
	return profile, nil
}

var _ idpkit.Provider = (*Provider)(nil)
