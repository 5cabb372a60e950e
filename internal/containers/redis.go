package containers

import (
	"context"
	"fmt"
	"log"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/vlatan/transcript-bot/internal/config"
)

// Same major version as the production title cache
const redisImage = "redis:8.0.3"

type redisContainer struct {
	container *tcredis.RedisContainer
}

// Terminate stops and removes the container
func (rc *redisContainer) Terminate(ctx context.Context) {
	if err := rc.container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}
}

// SetupTestRedis starts a disposable Redis server
// and points the Redis settings of the config at it
func SetupTestRedis(ctx context.Context, cfg *config.Config) (Container, error) {

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		return nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	rc := &redisContainer{container}
	host, port, err := rc.address(ctx)
	if err != nil {
		rc.Terminate(ctx)
		return nil, err
	}

	cfg.RedisHost = host
	cfg.RedisPort = port
	cfg.RedisPassword = ""

	return rc, nil
}

// Host and mapped port the container is reachable on
func (rc *redisContainer) address(ctx context.Context) (string, int, error) {

	host, err := rc.container.Host(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := rc.container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return "", 0, fmt.Errorf("failed to get container port: %w", err)
	}

	return host, port.Int(), nil
}
