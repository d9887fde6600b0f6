package normalize

import "errors"

var (
	// ErrMissingIdentifier indicates the raw payload carried no usable
	// identity. Treated as an authentication failure, not a data error.
	ErrMissingIdentifier = errors.New("normalize: payload has no identifier")

	// ErrMalformedBirthday indicates the payload carried a birthday that is
	// not an exact three-segment numeric "month/day/year" string.
	ErrMalformedBirthday = errors.New("normalize: malformed birthday")
)
