package normalize

// Profile is the canonical, provider-agnostic user profile schema. Every
// field always has a defined value: normalization substitutes the zero value
// for anything the raw payload omits, so downstream code never needs
// per-field existence checks.
type Profile struct {
	Identifier   string `json:"identifier"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhotoURL     string `json:"photo_url"`
	CoverInfoURL string `json:"cover_info_url"`
	ProfileURL   string `json:"profile_url"`
	WebSiteURL   string `json:"website_url"`
	Gender       string `json:"gender"`
	Language     string `json:"language"`
	Description  string `json:"description"`
	Email        string `json:"email"`
	// EmailVerified mirrors Email verbatim: the upstream payloads carry no
	// independent verification flag. A deliberate simplification.
	EmailVerified string `json:"email_verified"`
	Region        string `json:"region"`
	City          string `json:"city"`
	Country       string `json:"country"`
	BirthDay      int    `json:"birth_day,omitempty"`
	BirthMonth    int    `json:"birth_month,omitempty"`
	BirthYear     int    `json:"birth_year,omitempty"`
}
