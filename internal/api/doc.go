// Package api handles incoming HTTP requests, request validation and
// response formatting for the users, projects, todos, groups and token
// resources. It acts as an adapter between HTTP clients and the service
// layer: handlers decode camelCase JSON, call a service, and pick the
// read or write representation of the result.
package api
