// Package middleware holds the echo middleware wrapped around every route:
// request ids, request-scoped loggers, New Relic tracing, request logging,
// panic recovery and the global error handler.
package middleware
