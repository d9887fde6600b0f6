package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis connection for the session store.
type RedisConfig struct {
	ConnectionURL  string        `env:"IDPKIT_REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"IDPKIT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"IDPKIT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"IDPKIT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis establishes a Redis connection with retry, verifying it with a
// ping before handing it out.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisStore implements Store on a Redis hash per session. Each write
// refreshes the session TTL, so abandoned login flows expire on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix (default "idpkit:session:").
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisTTL overrides the session TTL (default 1h, <= 0 keeps sessions
// forever).
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "idpkit:session:",
		ttl:    time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, sessionKey, field string) (string, error) {
	if sessionKey == "" {
		return "", ErrEmptySessionKey
	}

	value, err := s.client.HGet(ctx, s.prefix+sessionKey, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionKey, field, value string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}

	key := s.prefix + sessionKey
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, field, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sessionKey string, fields ...string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}
	if len(fields) == 0 {
		return nil
	}
	return s.client.HDel(ctx, s.prefix+sessionKey, fields...).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrEmptySessionKey
	}
	return s.client.Del(ctx, s.prefix+sessionKey).Err()
}

var _ Store = (*RedisStore)(nil)
