package store

import "errors"

var (
	// ErrNotFound indicates the session or field is absent.
	ErrNotFound = errors.New("store: not found")

	// ErrEmptySessionKey indicates an operation was attempted without a
	// session key.
	ErrEmptySessionKey = errors.New("store: empty session key")
)

// Connection and schema errors returned by the Connect and Migrate helpers.
var (
	ErrInvalidRedisConnString  = errors.New("store: failed to parse redis connection url")
	ErrRedisNotReady           = errors.New("store: redis is not ready")
	ErrInvalidPostgresConfig   = errors.New("store: failed to parse postgres config")
	ErrPostgresNotReady        = errors.New("store: postgres is not ready")
	ErrMongoNotReady           = errors.New("store: mongo is not ready")
	ErrFailedToApplyMigrations = errors.New("store: failed to apply migrations")
)
