package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig configures the Postgres connection for the session store.
type PostgresConfig struct {
	ConnectionString  string        `env:"IDPKIT_PG_CONN_URL,required"`
	MaxOpenConns      int32         `env:"IDPKIT_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"IDPKIT_PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"IDPKIT_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	RetryAttempts     int           `env:"IDPKIT_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"IDPKIT_PG_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectPostgres establishes a pgx connection pool with linear backoff
// between attempts, verifying the connection with a ping.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidPostgresConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	for i := range cfg.RetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err := pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}

	return nil, ErrPostgresNotReady
}

// PostgresStore implements Store on a single table with one row per
// (session_key, field) pair. Run Migrate once at startup to create it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, sessionKey, field string) (string, error) {
	if sessionKey == "" {
		return "", ErrEmptySessionKey
	}

	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM idpkit_sessions WHERE session_key = $1 AND field = $2`,
		sessionKey, field,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, sessionKey, field, value string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO idpkit_sessions (session_key, field, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (session_key, field)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		sessionKey, field, value,
	)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, sessionKey string, fields ...string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}
	if len(fields) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`DELETE FROM idpkit_sessions WHERE session_key = $1 AND field = ANY($2)`,
		sessionKey, fields,
	)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	_, err := s.pool.Exec(ctx,
		`DELETE FROM idpkit_sessions WHERE session_key = $1`,
		sessionKey,
	)
	return err
}

var _ Store = (*PostgresStore)(nil)
