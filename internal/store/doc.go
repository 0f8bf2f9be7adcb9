// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so services never depend on a specific
// database technology. Every read takes an explicit domain.Visibility.
package store
