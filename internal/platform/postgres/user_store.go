package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

var userColumns = []string{
	"id", "username", "first_name", "middle_name", "last_name", "email",
	"birthdate", "password_hash", "is_active", "is_superuser", "date_joined",
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a pool or transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx store.DBTX) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var middle *string
	var active bool
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&middle,
		&u.LastName,
		&u.Email,
		&u.Birthdate,
		&u.PasswordHash,
		&active,
		&u.IsSuperuser,
		&u.DateJoined,
	); err != nil {
		return nil, err
	}
	if middle != nil {
		u.MiddleName = *middle
	}
	u.Lifecycle = domain.LifecycleFromFlag(active)
	return &u, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// mapUserWriteError translates constraint violations raised by user writes.
func mapUserWriteError(err error) error {
	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%w: unknown role or project: %v", store.ErrInvalidEntity, err)
	}
	return MapError(err)
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return err
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO users (username, first_name, middle_name, last_name, email,
			birthdate, password_hash, is_active, is_superuser, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		user.Username,
		user.FirstName,
		nullableString(user.MiddleName),
		user.LastName,
		user.Email,
		user.Birthdate,
		user.PasswordHash,
		user.Lifecycle.Flag(),
		user.IsSuperuser,
		user.DateJoined,
	).Scan(&user.ID)
	if err != nil {
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return mapUserWriteError(err)
	}

	if err := s.replaceMemberships(ctx, user); err != nil {
		log.Error("failed to save user memberships",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return mapUserWriteError(err)
	}

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

func (s *PostgresUserStore) replaceMemberships(ctx context.Context, user *domain.User) error {
	if err := replaceLinks(ctx, s.db, "user_roles", "user_id", "group_id", user.ID, user.RoleIDs); err != nil {
		return err
	}
	return replaceLinks(ctx, s.db, "project_users", "user_id", "project_id", user.ID, user.ProjectIDs)
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID",
		slog.Int64("user_id", id),
		slog.String("visibility", vis.String()))

	query, args, err := whereAll(
		psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}),
		[]squirrel.Sqlizer{visibilityPredicate(vis, "is_active")},
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user query: %w", err)
	}

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}
	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(userColumns...).From("users").
		Where(squirrel.Eq{"username": username}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user query: %w", err)
	}

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("user not found by username")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	preds := userPredicates(filter)

	countSQL, countArgs, err := whereAll(psql.Select("COUNT(*)").From("users"), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building user count query: %w", err)
	}
	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query, args, err := withPage(whereAll(psql.Select(userColumns...).From("users"), preds), page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building user list query: %w", err)
	}
	users, err := s.queryUsers(ctx, query, args...)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, 0, err
	}

	log.Debug("users listed",
		slog.Int("count", len(users)),
		slog.Int("total", total),
		slog.String("visibility", filter.Visibility.String()))
	return users, total, nil
}

// ListSuperusers implements store.UserStore.ListSuperusers
func (s *PostgresUserStore) ListSuperusers(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").
		Where(squirrel.Eq{"is_superuser": true}).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building superuser query: %w", err)
	}
	users, err := s.queryUsers(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list superusers",
			slog.String("error", err.Error()))
		return nil, err
	}
	return users, nil
}

func (s *PostgresUserStore) queryUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET username = $1, first_name = $2, middle_name = $3, last_name = $4,
			email = $5, birthdate = $6, is_superuser = $7,
			password_hash = COALESCE(NULLIF($8, ''), password_hash)
		WHERE id = $9 AND is_active
	`,
		user.Username,
		user.FirstName,
		nullableString(user.MiddleName),
		user.LastName,
		user.Email,
		user.Birthdate,
		user.IsSuperuser,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return mapUserWriteError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrUserNotFound); err != nil {
		log.Debug("active user not found for update", slog.Int64("user_id", user.ID))
		return err
	}

	if err := s.replaceMemberships(ctx, user); err != nil {
		log.Error("failed to save user memberships",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return mapUserWriteError(err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", user.ID))
	return nil
}

// SetLifecycle implements store.UserStore.SetLifecycle
func (s *PostgresUserStore) SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, lifecycle.Flag(), id)
	if err != nil {
		log.Error("failed to set user lifecycle",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user lifecycle changed",
		slog.Int64("user_id", id),
		slog.String("lifecycle", lifecycle.String()))
	return nil
}

// LoadRelations implements store.UserStore.LoadRelations
func (s *PostgresUserStore) LoadRelations(ctx context.Context, users []*domain.User) error {
	if len(users) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	// A batch may hold several copies of one user, e.g. a member of two
	// groups. Every copy receives the relations.
	byID := make(map[int64][]*domain.User, len(users))
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		u.RoleIDs = []int64{}
		u.ProjectIDs = []int64{}
		u.Todos = []domain.Todo{}
		u.Projects = []domain.Project{}
		u.Roles = []domain.PermissionGroup{}
		if _, seen := byID[u.ID]; !seen {
			ids = append(ids, u.ID)
		}
		byID[u.ID] = append(byID[u.ID], u)
	}

	for _, load := range []func(context.Context, []int64, map[int64][]*domain.User) error{
		s.loadRoles,
		s.loadProjects,
		s.loadTodos,
	} {
		if err := load(ctx, ids, byID); err != nil {
			log.Error("failed to load user relations",
				slog.String("error", err.Error()),
				slog.Int("users", len(ids)))
			return MapError(err)
		}
	}
	return nil
}

func (s *PostgresUserStore) loadRoles(ctx context.Context, ids []int64, byID map[int64][]*domain.User) error {
	rows, err := s.db.Query(ctx, `
		SELECT ur.user_id, g.id, g.role
		FROM user_roles ur
		JOIN permission_groups g ON g.id = ur.group_id
		WHERE ur.user_id = ANY($1)
		ORDER BY ur.user_id, g.id
	`, ids)
	if err != nil {
		return fmt.Errorf("querying user roles: %w", err)
	}

	type link struct{ userID, groupID int64 }
	var links []link
	groups := map[int64]*domain.PermissionGroup{}
	var ordered []*domain.PermissionGroup
	for rows.Next() {
		var l link
		var role string
		if err := rows.Scan(&l.userID, &l.groupID, &role); err != nil {
			rows.Close()
			return fmt.Errorf("scanning user role: %w", err)
		}
		links = append(links, l)
		if _, ok := groups[l.groupID]; !ok {
			g := &domain.PermissionGroup{ID: l.groupID, Role: role}
			groups[l.groupID] = g
			ordered = append(ordered, g)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if err := loadGroupPermissions(ctx, s.db, ordered); err != nil {
		return err
	}
	for _, l := range links {
		for _, u := range byID[l.userID] {
			u.RoleIDs = append(u.RoleIDs, l.groupID)
			u.Roles = append(u.Roles, *groups[l.groupID])
		}
	}
	return nil
}

func (s *PostgresUserStore) loadProjects(ctx context.Context, ids []int64, byID map[int64][]*domain.User) error {
	rows, err := s.db.Query(ctx, `
		SELECT pu.user_id, p.id, p.name, p.repository, p.created, p.updated
		FROM project_users pu
		JOIN projects p ON p.id = pu.project_id
		WHERE pu.user_id = ANY($1)
		ORDER BY pu.user_id, p.id
	`, ids)
	if err != nil {
		return fmt.Errorf("querying user projects: %w", err)
	}

	type link struct{ userID, projectID int64 }
	var links []link
	projects := map[int64]*domain.Project{}
	var ordered []*domain.Project
	for rows.Next() {
		var l link
		var p domain.Project
		if err := rows.Scan(&l.userID, &p.ID, &p.Name, &p.Repository, &p.Created, &p.Updated); err != nil {
			rows.Close()
			return fmt.Errorf("scanning user project: %w", err)
		}
		l.projectID = p.ID
		links = append(links, l)
		if _, ok := projects[p.ID]; !ok {
			projects[p.ID] = &p
			ordered = append(ordered, &p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if err := loadProjectMembers(ctx, s.db, ordered); err != nil {
		return err
	}
	for _, l := range links {
		for _, u := range byID[l.userID] {
			u.ProjectIDs = append(u.ProjectIDs, l.projectID)
			u.Projects = append(u.Projects, *projects[l.projectID])
		}
	}
	return nil
}

// loadTodos attaches the users' active todos.
func (s *PostgresUserStore) loadTodos(ctx context.Context, ids []int64, byID map[int64][]*domain.User) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, project_id, user_id, text, active, created, updated
		FROM todos
		WHERE user_id = ANY($1) AND active
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("querying user todos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return fmt.Errorf("scanning user todo: %w", err)
		}
		for _, u := range byID[t.UserID] {
			u.Todos = append(u.Todos, *t)
		}
	}
	return rows.Err()
}
