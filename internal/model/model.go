// Package model holds the domain types, request payloads and the
// request/response envelope the action handler speaks.
package model
