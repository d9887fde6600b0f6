package facebook

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

const Name = "facebook"

const defaultGraphURL = "https://graph.facebook.com"

// profileFields is the Graph API field selection backing the canonical
// profile schema.
const profileFields = "id,name,first_name,last_name,link,website,gender,locale,about,email,hometown,birthday"

// URL templates for the derived profile fields. Always computed from the
// identifier (and access token for the cover), never read from the payload.
const (
	photoURLTemplate     = defaultGraphURL + "/%s/picture?width=150&height=150"
	coverInfoURLTemplate = defaultGraphURL + "/%s?fields=cover&access_token=%s"
)

// Config holds configuration for the Facebook provider.
type Config struct {
	ClientID     string   `env:"FACEBOOK_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"FACEBOOK_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"FACEBOOK_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"FACEBOOK_OAUTH_SCOPES" envSeparator:"," envDefault:"email,public_profile"`
}

// Provider implements idpkit.Provider against the Facebook Graph API.
//
// Facebook exposes none of the optional social-graph capabilities through
// this adapter: contacts, status, pages, and activity all probe as
// Unsupported.
type Provider struct {
	conf       *oauth2.Config
	httpClient *http.Client
	graphURL   string
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

// WithGraphURL overrides the Graph API base URL, for tests.
func WithGraphURL(url string) Option {
	return func(p *Provider) {
		if url != "" {
			p.graphURL = url
		}
	}
}

// New creates a Facebook provider. The default scope asks for email and
// public_profile; override through Config.Scopes.
func New(cfg Config, opts ...Option) *Provider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"email", "public_profile"}
	}

	p := &Provider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoints.Facebook,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		graphURL:   defaultGraphURL,
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

// BuildAuthURL returns the Facebook login URL carrying the state nonce.
func (p *Provider) BuildAuthURL(state string) (string, error) {
	if p.conf.RedirectURL == "" {
		return "", fmt.Errorf("facebook: redirect url is not configured")
	}
	return p.conf.AuthCodeURL(state), nil
}

// Exchange trades the callback code for an access token.
func (p *Provider) Exchange(ctx context.Context, cb idpkit.Callback) (idpkit.Token, error) {
	tok, err := p.conf.Exchange(ctx, cb.Code)
	if err != nil {
		return idpkit.Token{}, fmt.Errorf("facebook: exchange code: %w", err)
	}
	return idpkit.Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, nil
}

// FetchProfile requests the user's profile from the Graph API.
func (p *Provider) FetchProfile(ctx context.Context, token idpkit.Token) (normalize.Payload, error) {
	url := fmt.Sprintf("%s/me?fields=%s", p.graphURL, profileFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
		return nil, fmt.Errorf("facebook: graph api returned status %d", resp.StatusCode)
	}

	var payload normalize.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Normalize maps a Graph API payload into the canonical schema. The photo and
// cover-info URLs are computed from the identifier and access token.
func (p *Provider) Normalize(payload normalize.Payload, token idpkit.Token) (normalize.Profile, error) {
	return normalize.Normalize(payload, normalize.Mapping{
		Identifier:  "id",
		Username:    "username",
		DisplayName: "name",
		FirstName:   "first_name",
		LastName:    "last_name",
		ProfileURL:  "link",
		WebSiteURL:  "website",
		Gender:      "gender",
		Language:    "locale",
		Description: "about",
		Email:       "email",
		Birthday:    "birthday",
		Region:      []string{"hometown", "name"},
	}, normalize.URLTemplates{
		Photo:     photoURLTemplate,
		CoverInfo: coverInfoURLTemplate,
	}, token.AccessToken)
}

var _ idpkit.Provider = (*Provider)(nil)
