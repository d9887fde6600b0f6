package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idpkit/config"
)

type oauthTestConfig struct {
	ClientID     string   `env:"LOADER_TEST_CLIENT_ID,required"`
	ClientSecret string   `env:"LOADER_TEST_CLIENT_SECRET,required"`
	Scopes       []string `env:"LOADER_TEST_SCOPES" envSeparator:"," envDefault:"email,profile"`
}

type missingTestConfig struct {
	Token string `env:"LOADER_TEST_ABSENT_TOKEN,required"`
}

type cachedTestConfig struct {
	Value string `env:"LOADER_TEST_CACHED_VALUE"`
}

func TestLoad(t *testing.T) {
	// No t.Parallel: the loader reads process-level environment state.

	t.Run("parses tagged fields", func(t *testing.T) {
		t.Setenv("LOADER_TEST_CLIENT_ID", "id-1")
		t.Setenv("LOADER_TEST_CLIENT_SECRET", "secret-1")

		var cfg oauthTestConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "id-1", cfg.ClientID)
		assert.Equal(t, "secret-1", cfg.ClientSecret)
		assert.Equal(t, []string{"email", "profile"}, cfg.Scopes, "defaults apply")
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg missingTestConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("caches by type", func(t *testing.T) {
		t.Setenv("LOADER_TEST_CACHED_VALUE", "first")

		var first cachedTestConfig
		require.NoError(t, config.Load(&first))
		require.Equal(t, "first", first.Value)

		t.Setenv("LOADER_TEST_CACHED_VALUE", "second")

		var second cachedTestConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value, "subsequent loads reuse the cached parse")
	})

	t.Run("nil pointer", func(t *testing.T) {
		require.ErrorIs(t, config.Load[cachedTestConfig](nil), config.ErrNilPointer)
	})
}
