// Package errs defines the error types the API hands back to its clients.
//
// Every failure that reaches the action handler is turned into an *HTTPError.
// The client only ever sees the status code and a `{"error": "..."}` body;
// Code and Errors are kept for log lines.
package errs
