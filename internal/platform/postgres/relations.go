package postgres

import (
	"context"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// The loaders below fetch one relation for a whole batch of parents with a
// single query, keyed by parent id. Callers stitch the results together.

// loadProjectMembers fills UserIDs for the given projects.
func loadProjectMembers(ctx context.Context, db store.DBTX, projects []*domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Project, len(projects))
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		p.UserIDs = []int64{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := db.Query(ctx, `
		SELECT project_id, user_id
		FROM project_users
		WHERE project_id = ANY($1)
		ORDER BY project_id, user_id
	`, ids)
	if err != nil {
		return fmt.Errorf("querying project members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, userID int64
		if err := rows.Scan(&projectID, &userID); err != nil {
			return fmt.Errorf("scanning project member: %w", err)
		}
		if p, ok := byID[projectID]; ok {
			p.UserIDs = append(p.UserIDs, userID)
		}
	}
	return rows.Err()
}

// loadGroupPermissions fills Permissions for the given groups.
func loadGroupPermissions(ctx context.Context, db store.DBTX, groups []*domain.PermissionGroup) error {
	if len(groups) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.PermissionGroup, len(groups))
	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		g.Permissions = []domain.Permission{}
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := db.Query(ctx, `
		SELECT gp.group_id, p.id, p.codename, p.name
		FROM group_permissions gp
		JOIN permissions p ON p.id = gp.permission_id
		WHERE gp.group_id = ANY($1)
		ORDER BY gp.group_id, p.id
	`, ids)
	if err != nil {
		return fmt.Errorf("querying group permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID int64
		var perm domain.Permission
		if err := rows.Scan(&groupID, &perm.ID, &perm.Codename, &perm.Name); err != nil {
			return fmt.Errorf("scanning group permission: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Permissions = append(g.Permissions, perm)
		}
	}
	return rows.Err()
}

// replaceLinks rewrites the rows of a many-to-many link table owned by ownerID.
// The statements run on db, so callers that need atomicity pass a transaction.
func replaceLinks(ctx context.Context, db store.DBTX, table, ownerCol, otherCol string, ownerID int64, otherIDs []int64) error {
	if _, err := db.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, ownerCol), ownerID); err != nil {
		return err
	}
	if len(otherIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (%s, %s) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING",
			table, ownerCol, otherCol),
		ownerID, otherIDs)
	return err
}
