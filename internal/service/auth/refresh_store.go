package auth

import (
	"context"
	"time"
)

// RefreshStore tracks issued refresh tokens so each can be used once.
type RefreshStore interface {
	// Save records a refresh token id for the user until ttl elapses.
	Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error

	// Consume removes the token id and returns the user it was issued to.
	// Returns ErrRefreshTokenReused if the id is unknown, already consumed or expired.
	Consume(ctx context.Context, tokenID string) (int64, error)
}
