// Package normalize converts raw, provider-shaped profile payloads into one
// canonical profile schema with deterministic defaulting and derived-field
// computation.
//
// Providers ship wildly different payloads: heterogeneous field names, nested
// structures, numeric identifiers, partial data. Normalize centralizes all
// defaulting in one pure function driven by a per-provider Mapping, so
// per-field existence checks never leak into provider or application code:
//
//	profile, err := normalize.Normalize(payload, normalize.Mapping{
//		Identifier:  "id",
//		DisplayName: "name",
//		Email:       "email",
//		Region:      []string{"hometown", "name"},
//		Birthday:    "birthday",
//	}, normalize.URLTemplates{
//		Photo: "https://example.com/%s/picture",
//	}, token.AccessToken)
//
// Only the identifier is mandatory; a payload without one fails with
// ErrMissingIdentifier and is treated as an authentication failure upstream.
// Every other field defaults to its zero value when absent.
package normalize
