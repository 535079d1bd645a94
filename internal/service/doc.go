// Package service contains the business logic layer for postboard.
//
// Services coordinate between handlers and repositories. UserService and
// PostService are thin pass-throughs to their stores; QueryService derives
// read-only views (search, stats, availability) from both stores.
//
// Services depend on repository interfaces defined in this package,
// following the dependency inversion principle.
//
// # Errors
//
// Not-found errors from the stores are returned unchanged so handlers can map
// them with apperrors.IsNotFound. Other failures are wrapped with context.
//
// # Thread Safety
//
// All services are safe for concurrent use from multiple goroutines.
package service
