//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.2-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestCache_RoundTripAgainstRedis(t *testing.T) {
	addr := startRedis(t)
	log := logging.NewNopLogger()

	client, err := NewClient(&RedisConfig{Mode: "standalone", Addr: addr}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client, log, WithPrefix("it:"))
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return prediction{Score: 55, Class: "Medium"}, nil
	}

	var first, second prediction
	require.NoError(t, cache.GetOrSet(ctx, "assess", &first, time.Minute, loader))
	require.NoError(t, cache.GetOrSet(ctx, "assess", &second, time.Minute, loader))

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)

	require.NoError(t, cache.Delete(ctx, "assess"))
	var gone prediction
	assert.Equal(t, ErrCacheMiss, cache.Get(ctx, "assess", &gone))
}

//Personal.AI order the ending
