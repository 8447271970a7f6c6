// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the task manager, translating HTTP concerns to generation operations.
package api
