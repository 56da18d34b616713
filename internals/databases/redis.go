package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"collegeaccounts_backend/internals/configs"
)

// ConnectRedis membuka client redis bila REDIS_ADDR diset. nil, nil = redis tidak dipakai.
func ConnectRedis(ctx context.Context, log *zap.Logger) (*redis.Client, error) {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Info("REDIS_ADDR not set, running without redis")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	log.Info("✅ redis connected", zap.String("addr", addr))
	return client, nil
}
