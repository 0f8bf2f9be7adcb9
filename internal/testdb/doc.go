// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it live behind the integration build tag and skip
// themselves when no database URL is configured:
//
//	TODOAPI_TEST_DATABASE_URL=postgres://... go test -tags=integration ./...
//
// The schema is created once per package from the embedded migrations and
// every test runs inside a transaction that is rolled back afterwards.
package testdb
