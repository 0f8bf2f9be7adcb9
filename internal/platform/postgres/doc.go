// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query construction, execution through pgx, and data mapping
// between domain entities and database records. The schema itself lives in
// the embedded goose migrations.
package postgres
