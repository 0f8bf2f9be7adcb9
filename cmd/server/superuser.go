package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// operator is the principal used for commands run from the shell.
var operator = &domain.User{Username: "operator", IsSuperuser: true, Lifecycle: domain.Active}

// createSuperuser registers an active superuser through the user service,
// so the same validation and hashing apply as for the API.
func createSuperuser(
	ctx context.Context,
	cfg *config.Config,
	db store.TxBeginner,
	logger *slog.Logger,
	username, email, password string,
) (*domain.User, error) {
	users := service.NewUserService(
		postgres.NewPostgresUserStore(db, logger),
		db,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		authz.DefaultPolicy{},
		logger,
	)

	isSuperuser := true
	user, err := users.Create(ctx, operator, service.UserInput{
		Username:    &username,
		Email:       &email,
		Password:    &password,
		IsSuperuser: &isSuperuser,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}
	return user, nil
}
