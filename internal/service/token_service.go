package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// TokenPair is an access token plus the refresh token that renews it.
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenService issues and checks bearer tokens.
type TokenService interface {
	// Obtain exchanges credentials for a token pair.
	// Returns auth.ErrInvalidCredentials for unknown users, wrong passwords
	// and inactive accounts alike.
	Obtain(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh exchanges a refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Authenticate resolves an access token to its active user.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	userStore    store.UserStore
	jwtService   auth.JWTService
	verifier     auth.PasswordVerifier
	refreshStore auth.RefreshStore // nil means stateless refresh tokens
	logger       *slog.Logger
}

// NewTokenService creates a new TokenService. refreshStore may be nil.
func NewTokenService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	refreshStore auth.RefreshStore,
	logger *slog.Logger,
) TokenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenServiceImpl{
		userStore:    userStore,
		jwtService:   jwtService,
		verifier:     verifier,
		refreshStore: refreshStore,
		logger:       logger.With("component", "token_service"),
	}
}

// Obtain implements TokenService.Obtain
func (s *TokenServiceImpl) Obtain(ctx context.Context, username, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token requested for unknown user")
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user.PasswordHash == "" || s.verifier.Compare(user.PasswordHash, password) != nil {
		log.Debug("token requested with wrong password", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}
	if !user.IsActive() {
		log.Debug("token requested for inactive user", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	return s.issue(ctx, user.ID)
}

// Refresh implements TokenService.Refresh
// With a refresh store configured each refresh token is accepted once.
func (s *TokenServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if s.refreshStore != nil {
		owner, err := s.refreshStore.Consume(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, auth.ErrRefreshTokenReused) {
				log.Warn("refresh token replayed",
					"user_id", claims.UserID,
					"token_id", claims.ID)
				return nil, err
			}
			return nil, fmt.Errorf("failed to consume refresh token: %w", err)
		}
		if owner != claims.UserID {
			return nil, auth.ErrInvalidRefreshToken
		}
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID, domain.VisibleAll)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if !user.IsActive() {
		return nil, ErrInactiveAccount
	}

	return s.issue(ctx, user.ID)
}

// Authenticate implements TokenService.Authenticate
func (s *TokenServiceImpl) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.jwtService.ValidateToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID, domain.VisibleAll)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if !user.IsActive() {
		return nil, ErrInactiveAccount
	}
	return user, nil
}

func (s *TokenServiceImpl) issue(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, claims, err := s.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if s.refreshStore != nil {
		ttl := time.Until(claims.ExpiresAt)
		if err := s.refreshStore.Save(ctx, claims.ID, userID, ttl); err != nil {
			return nil, fmt.Errorf("failed to record refresh token: %w", err)
		}
	}

	s.logger.Debug("token pair issued", "user_id", userID)
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
