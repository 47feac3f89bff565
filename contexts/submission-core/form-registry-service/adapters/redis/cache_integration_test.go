//go:build integration

package redisadapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"taskhall/kernel/formschema"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestActiveConfigCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	cache := NewActiveConfigCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, found, err := cache.GetActive(ctx, formschema.FormKindSurvey)
	require.NoError(t, err)
	assert.False(t, found)

	cfg := formschema.FormConfig{
		ID:       "form-survey-3",
		Kind:     formschema.FormKindSurvey,
		Title:    "Profile",
		Version:  3,
		IsActive: true,
		Fields: []formschema.FieldSpec{
			{Name: "age", Kind: formschema.FieldNumber, Label: "Age", Required: true},
		},
	}
	require.NoError(t, cache.SetActive(ctx, cfg, time.Minute))

	got, found, err := cache.GetActive(ctx, formschema.FormKindSurvey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, cfg.ID, got.ID)
	assert.Equal(t, 3, got.Version)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "age", got.Fields[0].Name)

	ttl, err := client.TTL(ctx, cacheKey(formschema.FormKindSurvey)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0, "expected a ttl on the cache entry, got %s", ttl)

	require.NoError(t, cache.InvalidateActive(ctx, formschema.FormKindSurvey))
	_, found, err = cache.GetActive(ctx, formschema.FormKindSurvey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestActiveConfigCacheDropsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	client := startRedis(t)
	cache := NewActiveConfigCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, client.Set(ctx, cacheKey(formschema.FormKindTask), "{not json", time.Minute).Err())

	_, found, err := cache.GetActive(ctx, formschema.FormKindTask)
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := client.Exists(ctx, cacheKey(formschema.FormKindTask)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
