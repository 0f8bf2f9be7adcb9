// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill the API's operations.
//
// Key responsibilities:
//
//   - Scope every read with an explicit domain.Visibility
//   - Apply authorization checks through authz.Authorizer
//   - Merge full (PUT) and partial (PATCH) writes into domain entities
//   - Run writes that touch relation tables inside one transaction
//   - Turn deletes of users and todos into lifecycle transitions
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
