package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// psql builds statements with PostgreSQL's numbered placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// visibilityPredicate restricts a query to active rows unless vis admits all.
// column is the boolean lifecycle column of the queried table.
func visibilityPredicate(vis domain.Visibility, column string) squirrel.Sqlizer {
	if vis == domain.VisibleAll {
		return nil
	}
	return squirrel.Eq{column: true}
}

func whereAll(b squirrel.SelectBuilder, preds []squirrel.Sqlizer) squirrel.SelectBuilder {
	for _, p := range preds {
		if p != nil {
			b = b.Where(p)
		}
	}
	return b
}

func userPredicates(f store.UserFilter) []squirrel.Sqlizer {
	preds := []squirrel.Sqlizer{visibilityPredicate(f.Visibility, "is_active")}
	if f.Login != nil && *f.Login != "" {
		preds = append(preds, squirrel.Expr("strpos(username, ?) > 0", *f.Login))
	}
	if f.Username != "" {
		preds = append(preds, squirrel.Eq{"username": f.Username})
	}
	if f.Email != "" {
		preds = append(preds, squirrel.Eq{"email": f.Email})
	}
	if f.IsSuperuser != nil {
		preds = append(preds, squirrel.Eq{"is_superuser": *f.IsSuperuser})
	}
	return preds
}

func projectPredicates(f store.ProjectFilter) []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer
	if f.Name != "" {
		preds = append(preds, squirrel.Expr("strpos(lower(name), lower(?)) > 0", f.Name))
	}
	if f.UserID != 0 {
		preds = append(preds, squirrel.Expr(
			"id IN (SELECT project_id FROM project_users WHERE user_id = ?)", f.UserID))
	}
	return preds
}

func todoPredicates(f store.TodoFilter) []squirrel.Sqlizer {
	preds := []squirrel.Sqlizer{visibilityPredicate(f.Visibility, "active")}
	if f.ProjectID != 0 {
		preds = append(preds, squirrel.Eq{"project_id": f.ProjectID})
	}
	if f.UserID != 0 {
		preds = append(preds, squirrel.Eq{"user_id": f.UserID})
	}
	if f.Text != "" {
		preds = append(preds, squirrel.Expr("strpos(lower(text), lower(?)) > 0", f.Text))
	}
	if f.CreatedAfter != nil {
		preds = append(preds, squirrel.GtOrEq{"created": *f.CreatedAfter})
	}
	if f.CreatedBefore != nil {
		preds = append(preds, squirrel.Lt{"created": *f.CreatedBefore})
	}
	return preds
}

// withPage orders by primary key and applies the limit-offset window.
// A non-positive limit returns every row from the offset on.
func withPage(b squirrel.SelectBuilder, page store.Page) squirrel.SelectBuilder {
	b = b.OrderBy("id")
	if page.Limit > 0 {
		b = b.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		b = b.Offset(uint64(page.Offset))
	}
	return b
}
