// Package lib groups supporting modules that do not belong to a single layer,
// such as the Redis-backed product cache in lib/cache.
package lib
