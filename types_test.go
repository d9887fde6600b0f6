package idpkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("complete credentials", func(t *testing.T) {
		t.Parallel()

		cfg := Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "https://app/cb"}
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing pieces", func(t *testing.T) {
		t.Parallel()

		for name, cfg := range map[string]Config{
			"no client id":     {ClientSecret: "secret", RedirectURL: "https://app/cb"},
			"no client secret": {ClientID: "id", RedirectURL: "https://app/cb"},
			"empty":            {},
		} {
			assert.ErrorIs(t, cfg.Validate(), ErrMissingCredentials, name)
		}
	})
}

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	assert.False(t, Token{}.Valid(), "zero token")
	assert.True(t, Token{AccessToken: "tok"}.Valid(), "no expiry means valid")
	assert.True(t, Token{AccessToken: "tok", Expiry: time.Now().Add(time.Minute)}.Valid())
	assert.False(t, Token{AccessToken: "tok", Expiry: time.Now().Add(-time.Minute)}.Valid(), "expired")
}

func TestCallback_Denied(t *testing.T) {
	t.Parallel()

	assert.True(t, Callback{Error: "access_denied"}.Denied())
	assert.True(t, Callback{State: "s"}.Denied(), "no code and no error")
	assert.True(t, Callback{}.Denied())
	assert.False(t, Callback{Code: "c", State: "s"}.Denied())
	assert.False(t, Callback{Error: "server_error"}.Denied(), "other errors are not denials")
}

func TestCapability(t *testing.T) {
	t.Parallel()

	t.Run("available", func(t *testing.T) {
		t.Parallel()

		c := Available([]Contact{{Identifier: "1"}})
		require.True(t, c.Supported())

		v, ok := c.Value()
		require.True(t, ok)
		assert.Len(t, v, 1)
	})

	t.Run("unavailable", func(t *testing.T) {
		t.Parallel()

		c := Unavailable[[]Contact]()
		assert.False(t, c.Supported())

		v, ok := c.Value()
		assert.False(t, ok)
		assert.Nil(t, v)
	})
}
