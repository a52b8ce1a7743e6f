package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions(t *testing.T) {
	t.Run("Should require a URL", func(t *testing.T) {
		_, err := buildOptions(Config{})
		assert.Error(t, err)
	})

	t.Run("Should enable TLS and default port for rediss", func(t *testing.T) {
		opts, err := buildOptions(Config{URL: "rediss://default:pw@example.upstash.io"})
		require.NoError(t, err)
		assert.Equal(t, "example.upstash.io:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("Should prefer explicit password", func(t *testing.T) {
		opts, err := buildOptions(Config{URL: "redis://:fromurl@localhost:6380", Password: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})
}

func TestHealthCheckWithoutClient(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background()))
}
