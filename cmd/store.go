package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/db"
	"cryptohub/internal/configs"
	"cryptohub/internal/pkg/logx"
)

// memorySweepInterval is how often the in-memory store drops expired and revoked sessions.
const memorySweepInterval = 10 * time.Minute

// openSessionStore connects the backend named by cfg.SessionStore. The returned close
// function releases its connections.
func openSessionStore(ctx context.Context, cfg *configs.AppConfig) (auth.Store, func(), error) {
	switch cfg.SessionStore {
	case configs.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		logx.Info("Session store: PostgreSQL")
		return db.NewSessionStore(pool), pool.Close, nil

	case configs.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
		}
		logx.Info("Session store: Redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return auth.NewRedisStore(client), func() { _ = client.Close() }, nil

	default:
		logx.Warn("Session store: in-memory. Sessions are lost on restart.")
		store := auth.NewMemoryStore()
		return store, store.StartSweeper(memorySweepInterval), nil
	}
}
