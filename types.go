package idpkit

import "time"

// Config holds immutable per-provider settings. Provider packages embed it in
// their env-tagged configuration structs and supply their own default scopes,
// which callers may override.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Validate reports whether the mandatory credentials are present.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Token is the opaque credential artifact issued by an upstream provider.
// The broker stores and replays it; it never inspects or verifies it.
type Token struct {
	AccessToken string
	Expiry      time.Time // zero when the provider did not report one
}

// Valid reports whether the token carries a non-expired access token.
func (t Token) Valid() bool {
	if t.AccessToken == "" {
		return false
	}
	return t.Expiry.IsZero() || time.Now().Before(t.Expiry)
}

// Callback carries the relevant query parameters of the OAuth2 callback
// request, extracted by the transport layer.
type Callback struct {
	Code  string
	State string
	Error string // provider error code, e.g. "access_denied"
}

// Denied reports whether the callback represents the user declining consent.
func (cb Callback) Denied() bool {
	return cb.Error == "access_denied" || (cb.Error == "" && cb.Code == "")
}

// Contact is a single entry of a user's contact list.
type Contact struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	ProfileURL  string `json:"profile_url"`
	PhotoURL    string `json:"photo_url"`
	Email       string `json:"email"`
}

// Status is a single user status update.
type Status struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is a page or organization the user manages.
type Page struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Writable bool   `json:"writable"`
}

// Activity is a single entry of a user's activity stream.
type Activity struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityStream selects which activity feed to fetch.
type ActivityStream string

const (
	// ActivityTimeline is the full stream visible to the user.
	ActivityTimeline ActivityStream = "timeline"
	// ActivityMe restricts the stream to the user's own activity.
	ActivityMe ActivityStream = "me"
)
