package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Obtain(t *testing.T) {
	t.Parallel()

	withHash := func(lifecycle domain.Lifecycle) *domain.User {
		u := activeUser(3)
		u.Username = "erin"
		u.PasswordHash = "hash"
		u.Lifecycle = lifecycle
		return u
	}

	tests := []struct {
		name     string
		user     *domain.User
		storeErr error
		matches  bool
		wantErr  error
	}{
		{name: "valid credentials", user: withHash(domain.Active), matches: true},
		{name: "wrong password", user: withHash(domain.Active), matches: false, wantErr: auth.ErrInvalidCredentials},
		{name: "inactive user", user: withHash(domain.Inactive), matches: true, wantErr: auth.ErrInvalidCredentials},
		{name: "unknown user", storeErr: store.ErrUserNotFound, wantErr: auth.ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			users := new(mocks.UserStore)
			refresh := mocks.NewMockRefreshStore()
			jwtSvc := &mocks.MockJWTService{Token: "access", RefreshToken: "refresh"}
			svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{ShouldSucceed: tc.matches}, refresh, nil)

			users.On("GetByUsername", mock.Anything, "erin").Return(tc.user, tc.storeErr)

			pair, err := svc.Obtain(context.Background(), "erin", "pw")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, refresh.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &service.TokenPair{Access: "access", Refresh: "refresh"}, pair)
			assert.Equal(t, 1, refresh.Len())
		})
	}
}

func TestTokenService_RefreshRotation(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	refresh := mocks.NewMockRefreshStore()
	claims := &auth.Claims{UserID: 3, TokenType: auth.TokenTypeRefresh, ID: "jti-1"}
	jwtSvc := &mocks.MockJWTService{Token: "access-2", RefreshToken: "refresh-2", Claims: claims}
	svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{}, refresh, nil)

	require.NoError(t, refresh.Save(context.Background(), "jti-1", 3, 0))
	users.On("GetByID", mock.Anything, int64(3), domain.VisibleAll).Return(activeUser(3), nil)

	pair, err := svc.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", pair.Refresh)

	_, err = svc.Refresh(context.Background(), "refresh-1")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenReused)
}

func TestTokenService_RefreshStateless(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	claims := &auth.Claims{UserID: 3, TokenType: auth.TokenTypeRefresh, ID: "jti-1"}
	jwtSvc := &mocks.MockJWTService{Token: "a", RefreshToken: "r", Claims: claims}
	svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{}, nil, nil)

	inactive := activeUser(3)
	inactive.Lifecycle = domain.Inactive
	users.On("GetByID", mock.Anything, int64(3), domain.VisibleAll).Return(inactive, nil)

	_, err := svc.Refresh(context.Background(), "r")
	assert.ErrorIs(t, err, service.ErrInactiveAccount)
}

func TestTokenService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		jwtSvc := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		svc := service.NewTokenService(new(mocks.UserStore), jwtSvc, &mocks.MockPasswordVerifier{}, nil, nil)

		_, err := svc.Authenticate(context.Background(), "stale")
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.UserStore)
		jwtSvc := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 8}}
		svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{}, nil, nil)
		users.On("GetByID", mock.Anything, int64(8), domain.VisibleAll).Return(nil, store.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), "t")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("store failure is not an auth error", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.UserStore)
		jwtSvc := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 8}}
		svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{}, nil, nil)
		boom := errors.New("connection refused")
		users.On("GetByID", mock.Anything, int64(8), domain.VisibleAll).Return(nil, boom)

		_, err := svc.Authenticate(context.Background(), "t")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("active user", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.UserStore)
		jwtSvc := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 8}}
		svc := service.NewTokenService(users, jwtSvc, &mocks.MockPasswordVerifier{}, nil, nil)
		users.On("GetByID", mock.Anything, int64(8), domain.VisibleAll).Return(activeUser(8), nil)

		got, err := svc.Authenticate(context.Background(), "t")
		require.NoError(t, err)
		assert.Equal(t, int64(8), got.ID)
	})
}
