package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Mapping names the raw payload key behind each canonical text field. An
// empty key leaves the field at its zero value, letting providers opt out of
// fields they do not ship. Region is a nested key chain since providers wrap
// hometown information in an object.
type Mapping struct {
	Identifier  string
	Username    string
	DisplayName string
	FirstName   string
	LastName    string
	ProfileURL  string
	WebSiteURL  string
	Gender      string
	Language    string
	Description string
	Email       string
	Birthday    string
	Region      []string
}

// URLTemplates hold the provider's fixed templates for derived URL fields.
// Photo receives the identifier; CoverInfo receives the identifier and the
// access token. An empty template leaves the field empty. These fields are
// always computed, never copied from the raw payload.
type URLTemplates struct {
	Photo     string
	CoverInfo string
}

// Normalize maps a raw provider payload into the canonical profile schema.
//
// The identifier is the sole mandatory field; its absence is an
// authentication failure indicator (ErrMissingIdentifier), not a data-quality
// issue. Every optional field defaults deterministically, so normalizing the
// same payload twice yields identical results.
func Normalize(p Payload, m Mapping, t URLTemplates, accessToken string) (Profile, error) {
	identifier := p.String(m.Identifier)
	if identifier == "" {
		return Profile{}, ErrMissingIdentifier
	}

	profile := Profile{
		Identifier:  identifier,
		Username:    p.String(m.Username),
		DisplayName: p.String(m.DisplayName),
		FirstName:   p.String(m.FirstName),
		LastName:    p.String(m.LastName),
		ProfileURL:  p.String(m.ProfileURL),
		WebSiteURL:  p.String(m.WebSiteURL),
		Gender:      p.String(m.Gender),
		Language:    canonicalLanguage(p.String(m.Language)),
		Description: p.String(m.Description),
		Email:       strings.ToLower(strings.TrimSpace(p.String(m.Email))),
	}
	profile.EmailVerified = profile.Email

	if t.Photo != "" {
		profile.PhotoURL = fmt.Sprintf(t.Photo, identifier)
	}
	if t.CoverInfo != "" {
		profile.CoverInfoURL = fmt.Sprintf(t.CoverInfo, identifier, accessToken)
	}

	if len(m.Region) > 0 {
		profile.Region = p.NestedString(m.Region...)
	}
	if profile.Region != "" {
		if city, country, ok := strings.Cut(profile.Region, ","); ok {
			profile.City = strings.TrimSpace(city)
			profile.Country = strings.TrimSpace(country)
		}
	}

	if m.Birthday != "" && p.Has(m.Birthday) {
		day, month, year, err := parseBirthday(p, m.Birthday)
		if err != nil {
			return Profile{}, err
		}
		profile.BirthDay = day
		profile.BirthMonth = month
		profile.BirthYear = year
	}

	return profile, nil
}

// parseBirthday parses a slash-delimited "month/day/year" string. Anything
// other than exactly three numeric segments is malformed and surfaced
// distinctly rather than silently truncated.
func parseBirthday(p Payload, key string) (day, month, year int, err error) {
	raw, ok := p[key].(string)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: birthday is not a string", ErrMalformedBirthday)
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedBirthday, raw)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedBirthday, raw)
		}
		nums[i] = n
	}
	return nums[1], nums[0], nums[2], nil
}

// canonicalLanguage renders provider locales ("en_US") as BCP 47 tags
// ("en-US"). Unparseable values pass through untouched rather than being
// dropped.
func canonicalLanguage(raw string) string {
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return raw
	}
	return tag.String()
}
