// Package domain contains the core entities of the todo application: users,
// projects, todos and permission groups, together with the lifecycle rules
// that govern soft deletion. It is independent of any storage or transport.
package domain
