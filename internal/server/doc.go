// Package server provides the HTTP surface: routing, middleware, handlers.
//
// Built on Echo. Structured errors from internal/errors are converted to JSON
// responses by the error middleware; identity for rate limiting comes from a
// cookie session.
package server
