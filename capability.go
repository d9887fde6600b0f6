package idpkit

// Capability is a tagged result for optional provider operations. It
// distinguishes "the provider does not do this" from an error and from
// genuinely empty data, so callers branch on the tag rather than on emptiness.
type Capability[T any] struct {
	value     T
	supported bool
}

// Available wraps a value produced by a supported operation.
func Available[T any](v T) Capability[T] {
	return Capability[T]{value: v, supported: true}
}

// Unavailable marks an operation the provider cannot perform.
func Unavailable[T any]() Capability[T] {
	return Capability[T]{}
}

// Supported reports whether the provider performed the operation.
func (c Capability[T]) Supported() bool {
	return c.supported
}

// Value returns the wrapped value and whether the operation was supported.
// The value is the zero value of T when unsupported.
func (c Capability[T]) Value() (T, bool) {
	return c.value, c.supported
}
