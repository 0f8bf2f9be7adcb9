package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// UserService provides the user resource operations.
type UserService interface {
	// List returns one page of active users with their relations loaded.
	// A login search matches users regardless of lifecycle.
	List(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error)

	// Get retrieves an active user with relations loaded.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// Create registers a new user.
	Create(ctx context.Context, principal *domain.User, in UserInput) (*domain.User, error)

	// Update applies a full or partial update to an active user.
	Update(ctx context.Context, principal *domain.User, id int64, in UserInput, partial bool) (*domain.User, error)

	// Destroy deactivates the user. Destroying an inactive user succeeds.
	Destroy(ctx context.Context, principal *domain.User, id int64) error

	// Superusers lists every superuser regardless of lifecycle.
	Superusers(ctx context.Context) ([]*domain.User, error)

	// Login returns the username of the user regardless of lifecycle.
	Login(ctx context.Context, id int64) (string, error)

	// FullName returns "first middle last" for the user regardless of lifecycle.
	FullName(ctx context.Context, id int64) (string, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	db         store.TxBeginner
	hasher     auth.PasswordHasher
	authorizer authz.Authorizer
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	authorizer authz.Authorizer,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		db:         db,
		hasher:     hasher,
		authorizer: authorizer,
		logger:     logger.With("component", "user_service"),
	}
}

// List implements UserService.List
func (s *UserServiceImpl) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error) {
	filter.Visibility = domain.VisibleActive
	if filter.Login != nil {
		filter.Visibility = domain.VisibleAll
	}

	users, total, err := s.userStore.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	if err := s.userStore.LoadRelations(ctx, users); err != nil {
		return nil, 0, fmt.Errorf("failed to load user relations: %w", err)
	}
	return users, total, nil
}

// Get implements UserService.Get
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id, domain.VisibleActive)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if err := s.userStore.LoadRelations(ctx, []*domain.User{user}); err != nil {
		return nil, fmt.Errorf("failed to load user relations: %w", err)
	}
	return user, nil
}

// Create implements UserService.Create
// The user and its memberships are written in one transaction.
func (s *UserServiceImpl) Create(ctx context.Context, principal *domain.User, in UserInput) (*domain.User, error) {
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceUser, authz.ActionCreate, nil); err != nil {
		return nil, err
	}
	if in.Username == nil {
		return nil, domain.NewValidationError("username", "is required", nil)
	}

	user := &domain.User{
		Lifecycle:  domain.Active,
		DateJoined: time.Now().UTC(),
	}
	applyUserInput(user, in, false)
	if err := checkSuperuserChange(principal, false, user.IsSuperuser); err != nil {
		return nil, err
	}
	if err := s.preparePassword(user, in); err != nil {
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		s.logger.Debug("failed to create user",
			"error", err,
			"username", user.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// Update implements UserService.Update
// Following the pattern of getting the complete user first, then applying the
// payload and passing the complete user back to the store.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in UserInput,
	partial bool,
) (*domain.User, error) {
	if !partial && in.Username == nil {
		return nil, domain.NewValidationError("username", "is required", nil)
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id, domain.VisibleActive)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}
		if err := txStore.LoadRelations(ctx, []*domain.User{user}); err != nil {
			return fmt.Errorf("failed to load user relations: %w", err)
		}
		if err := s.authorizer.Authorize(ctx, principal, authz.ResourceUser, authz.ActionUpdate, user); err != nil {
			return err
		}

		wasSuperuser := user.IsSuperuser
		applyUserInput(user, in, partial)
		if err := checkSuperuserChange(principal, wasSuperuser, user.IsSuperuser); err != nil {
			return err
		}
		if err := s.preparePassword(user, in); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		s.logger.Debug("user update failed",
			"error", err,
			"user_id", id)
		return nil, err
	}

	s.logger.Info("user updated successfully",
		"user_id", id,
		"partial", partial)
	return updated, nil
}

// Destroy implements UserService.Destroy
// The user is looked up regardless of lifecycle, so repeating the call on an
// already deactivated user succeeds without changes.
func (s *UserServiceImpl) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	user, err := s.userStore.GetByID(ctx, id, domain.VisibleAll)
	if err != nil {
		return fmt.Errorf("failed to retrieve user for deletion: %w", err)
	}
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceUser, authz.ActionDestroy, user); err != nil {
		return err
	}

	user.Deactivate()
	if err := s.userStore.SetLifecycle(ctx, user.ID, user.Lifecycle); err != nil {
		s.logger.Error("failed to deactivate user",
			"error", err,
			"user_id", id)
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("user deactivated", "user_id", id)
	return nil
}

// Superusers implements UserService.Superusers
func (s *UserServiceImpl) Superusers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.ListSuperusers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list superusers: %w", err)
	}
	if err := s.userStore.LoadRelations(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to load user relations: %w", err)
	}
	return users, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, id int64) (string, error) {
	user, err := s.userStore.GetByID(ctx, id, domain.VisibleAll)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user.Username, nil
}

// FullName implements UserService.FullName
func (s *UserServiceImpl) FullName(ctx context.Context, id int64) (string, error) {
	user, err := s.userStore.GetByID(ctx, id, domain.VisibleAll)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user.FullName(), nil
}

// preparePassword validates and hashes a password carried by the payload.
// An omitted or empty password keeps the stored hash.
func (s *UserServiceImpl) preparePassword(user *domain.User, in UserInput) error {
	user.Password = ""
	if in.Password != nil && *in.Password != "" {
		user.Password = *in.Password
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if user.Password == "" {
		return nil
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Password = ""
	return nil
}

func applyUserInput(user *domain.User, in UserInput, partial bool) {
	user.Username = pick(in.Username, user.Username, partial)
	user.FirstName = pick(in.FirstName, user.FirstName, partial)
	user.MiddleName = pick(in.MiddleName, user.MiddleName, partial)
	user.LastName = pick(in.LastName, user.LastName, partial)
	user.Email = pick(in.Email, user.Email, partial)
	user.IsSuperuser = pick(in.IsSuperuser, user.IsSuperuser, partial)
	user.RoleIDs = pick(in.Roles, user.RoleIDs, partial)
	user.ProjectIDs = pick(in.Projects, user.ProjectIDs, partial)
	if user.RoleIDs == nil {
		user.RoleIDs = []int64{}
	}
	if user.ProjectIDs == nil {
		user.ProjectIDs = []int64{}
	}
	if in.Birthdate != nil {
		b := *in.Birthdate
		user.Birthdate = &b
	} else if !partial {
		user.Birthdate = nil
	}
}

// checkSuperuserChange only lets superusers grant or revoke the superuser flag.
func checkSuperuserChange(principal *domain.User, before, after bool) error {
	if before == after {
		return nil
	}
	if principal == nil || !principal.IsSuperuser {
		return authz.ErrPermissionDenied
	}
	return nil
}
