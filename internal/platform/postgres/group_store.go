package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgresGroupStore implements the read-only store.GroupStore interface.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// GetByID implements store.GroupStore.GetByID
func (s *PostgresGroupStore) GetByID(ctx context.Context, id int64) (*domain.PermissionGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var g domain.PermissionGroup
	err := s.db.QueryRow(ctx, `SELECT id, role FROM permission_groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("group not found", slog.Int64("group_id", id))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by ID",
			slog.String("error", err.Error()),
			slog.Int64("group_id", id))
		return nil, MapError(err)
	}

	if err := loadGroupPermissions(ctx, s.db, []*domain.PermissionGroup{&g}); err != nil {
		return nil, MapError(err)
	}
	return &g, nil
}

// List implements store.GroupStore.List
func (s *PostgresGroupStore) List(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM permission_groups`).Scan(&total); err != nil {
		log.Error("failed to count groups", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query, args, err := withPage(psql.Select("id", "role").From("permission_groups"), page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building group list query: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to list groups", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	groups := []*domain.PermissionGroup{}
	for rows.Next() {
		var g domain.PermissionGroup
		if err := rows.Scan(&g.ID, &g.Role); err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, &g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	if err := loadGroupPermissions(ctx, s.db, groups); err != nil {
		log.Error("failed to load group permissions", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	return groups, total, nil
}

// LoadMembers implements store.GroupStore.LoadMembers
func (s *PostgresGroupStore) LoadMembers(ctx context.Context, groups []*domain.PermissionGroup) error {
	if len(groups) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	byID := make(map[int64]*domain.PermissionGroup, len(groups))
	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		g.Users = []domain.User{}
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := s.db.Query(ctx, `
		SELECT ur.group_id, u.id, u.username, u.first_name, u.middle_name, u.last_name,
			u.email, u.birthdate, u.password_hash, u.is_active, u.is_superuser, u.date_joined
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		WHERE ur.group_id = ANY($1)
		ORDER BY ur.group_id, u.id
	`, ids)
	if err != nil {
		log.Error("failed to query group members", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		u, err := scanUser(prefixedRow{row: rows, prefix: []any{&groupID}})
		if err != nil {
			return fmt.Errorf("scanning group member: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Users = append(g.Users, *u)
		}
	}
	return rows.Err()
}

// prefixedRow lets a row scanner for one entity read rows that carry extra
// leading columns.
type prefixedRow struct {
	row    pgx.Row
	prefix []any
}

func (r prefixedRow) Scan(dest ...any) error {
	return r.row.Scan(append(append([]any{}, r.prefix...), dest...)...)
}
