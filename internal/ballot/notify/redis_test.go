package notify_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/notify"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a throwaway Redis and returns its URL.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container test skipped in -short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStreamPublish(t *testing.T) {
	url := setupRedisContainer(t)
	ctx := context.Background()

	pub, err := notify.NewRedisStream(ctx, url, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })
	require.Equal(t, notify.DefaultStream, pub.Stream())

	created := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, pub.Publish(ctx, domain.Notification{
		ID: 7, Type: domain.NotificationVoteCast, Message: `Hari G voted on "Garden"`,
		LinkID: domain.Link(1), CreatedAt: created,
	}))
	require.NoError(t, pub.Publish(ctx, domain.Notification{
		ID: 8, Type: domain.NotificationWelcome, Message: "hi", CreatedAt: created,
	}))

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })

	msgs, err := rdb.XRange(ctx, notify.DefaultStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "vote_cast", msgs[0].Values["type"])
	require.Equal(t, "1", msgs[0].Values["link_id"])
	require.Equal(t, "2025-06-01T09:30:00Z", msgs[0].Values["created_at"])
	require.NotContains(t, msgs[1].Values, "link_id")
}

func TestNewRedisStreamRejectsBadURL(t *testing.T) {
	_, err := notify.NewRedisStream(context.Background(), "not-a-url", "x")
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	var p notify.Publisher = notify.Noop{}
	require.NoError(t, p.Publish(context.Background(), domain.Notification{}))
	require.NoError(t, p.Close())
}
