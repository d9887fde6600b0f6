package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("config: nil pointer provided to loader")

	// Registry errors.
	ErrRegistryNotReadable   = errors.New("config: failed to read provider registry")
	ErrParsingRegistry       = errors.New("config: failed to parse provider registry")
	ErrProviderNotConfigured = errors.New("config: provider is not configured")
	ErrProviderDisabled      = errors.New("config: provider is disabled")
)
