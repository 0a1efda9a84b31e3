package cart

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *RedisStore {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if redisC != nil {
			_ = redisC.Terminate(ctx)
		}
	})

	endpoint, err := redisC.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})
	return NewRedisStore(client, DefaultKey)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := setupRedis(t)
	ctx := context.Background()

	c := Upsert(nil, product(1, "keyboard", 1500), 2)
	require.NoError(t, store.Save(ctx, c))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestRedisStore_AbsentKeyLoadsEmptyCart(t *testing.T) {
	store := setupRedis(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore_CorruptBlobRecoversEmpty(t *testing.T) {
	store := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, store.client.Set(ctx, store.key, "{definitely not json", 0).Err())

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
