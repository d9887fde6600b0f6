package logger

import "log/slog"

// Attr helpers keep attribute keys consistent across the module.

// Component tags a record with the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Provider tags a record with the identity provider's name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// SessionKey tags a record with the session key scoping a flow.
func SessionKey(key string) slog.Attr {
	return slog.String("session_key", key)
}

// Error tags a record with an error value.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
