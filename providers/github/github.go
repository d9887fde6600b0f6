package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/dmitrymomot/idpkit"
	"github.com/dmitrymomot/idpkit/normalize"
)

const Name = "github"

const defaultAPIURL = "https://api.github.com"

// Config holds configuration for the GitHub provider.
type Config struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

// Provider implements idpkit.Provider against the GitHub REST API. It also
// implements idpkit.ContactsProvider, listing the authenticated user's
// followers.
type Provider struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiURL     string
}

// Option configures the provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithAPIURL overrides the REST API base URL, for tests and GitHub
// Enterprise installs.
func WithAPIURL(url string) Option {
	return func(p *Provider) {
		if url != "" {
			p.apiURL = url
		}
	}
}

// New creates a GitHub provider.
func New(cfg Config, opts ...Option) *Provider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"read:user", "user:email"}
	}

	p := &Provider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoints.GitHub,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     defaultAPIURL,
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

// BuildAuthURL returns the GitHub authorization URL carrying the state nonce.
func (p *Provider) BuildAuthURL(state string) (string, error) {
	if p.conf.RedirectURL == "" {
		return "", fmt.Errorf("github: redirect url is not configured")
	}
	return p.conf.AuthCodeURL(state), nil
}

// Exchange trades the callback code for an access token.
func (p *Provider) Exchange(ctx context.Context, cb idpkit.Callback) (idpkit.Token, error) {
	tok, err := p.conf.Exchange(ctx, cb.Code)
	if err != nil {
		return idpkit.Token{}, fmt.Errorf("github: exchange code: %w", err)
	}
	return idpkit.Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// FetchProfile requests the authenticated user from the REST API.
func (p *Provider) FetchProfile(ctx context.Context, token idpkit.Token) (normalize.Payload, error) {
	var payload normalize.Payload
	if err := p.get(ctx, token, "/user", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Normalize maps a GitHub user payload into the canonical schema. GitHub
// serves the avatar URL directly in the payload.
func (p *Provider) Normalize(payload normalize.Payload, token idpkit.Token) (normalize.Profile, error) {
	profile, err := normalize.Normalize(payload, normalize.Mapping{
		Identifier:  "id",
		Username:    "login",
		DisplayName: "name",
		ProfileURL:  "html_url",
		WebSiteURL:  "blog",
		Description: "bio",
		Email:       "email",
		Region:      []string{"location"},
	}, normalize.URLTemplates{}, token.AccessToken)
	if err != nil {
		return normalize.Profile{}, err
	}
	if profile.DisplayName == "" {
		profile.DisplayName = profile.Username
	}
	profile.PhotoURL = payload.String("avatar_url")
	return profile, nil
}

// Contacts lists the authenticated user's followers.
func (p *Provider) Contacts(ctx context.Context, token idpkit.Token) ([]idpkit.Contact, error) {
	var followers []struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		HTMLURL   string `json:"html_url"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := p.get(ctx, token, "/user/followers", &followers); err != nil {
		return nil, err
	}

	contacts := make([]idpkit.Contact, 0, len(followers))
	for _, f := range followers {
		contacts = append(contacts, idpkit.Contact{
			Identifier:  strconv.FormatInt(f.ID, 10),
			DisplayName: f.Login,
			ProfileURL:  f.HTMLURL,
			PhotoURL:    f.AvatarURL,
		})
	}
	return contacts, nil
}

func (p *Provider) get(ctx context.Context, token idpkit.Token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github: api returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ idpkit.Provider = (*Provider)(nil)
var _ idpkit.ContactsProvider = (*Provider)(nil)
