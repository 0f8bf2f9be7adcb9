// Package redis provides the Redis-backed refresh token store used for
// single-use refresh token rotation.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

// RefreshStore implements auth.RefreshStore on top of a Redis client.
// Each issued refresh token id is stored as refresh:<jti> -> user id with
// the token's lifetime as TTL.
type RefreshStore struct {
	client *goredis.Client
	logger *slog.Logger
}

var _ auth.RefreshStore = (*RefreshStore)(nil)

// NewRefreshStore creates a RefreshStore. If logger is nil, a default logger will be used.
func NewRefreshStore(client *goredis.Client, logger *slog.Logger) *RefreshStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshStore{
		client: client,
		logger: logger.With(slog.String("component", "refresh_store")),
	}
}

// Connect parses a redis:// URL, opens a client and verifies it with PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func key(tokenID string) string {
	return keyPrefix + tokenID
}

// Save implements auth.RefreshStore.Save
func (s *RefreshStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(tokenID), userID, ttl).Err(); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save refresh token",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return fmt.Errorf("saving refresh token: %w", err)
	}
	return nil
}

// Consume implements auth.RefreshStore.Consume
// GETDEL makes the read and the delete one atomic step, so two concurrent
// refreshes with the same token cannot both succeed.
func (s *RefreshStore) Consume(ctx context.Context, tokenID string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	val, err := s.client.GetDel(ctx, key(tokenID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			log.Debug("refresh token not found or already used", slog.String("token_id", tokenID))
			return 0, auth.ErrRefreshTokenReused
		}
		log.Error("failed to consume refresh token", slog.String("error", err.Error()))
		return 0, fmt.Errorf("consuming refresh token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return userID, nil
}
