// Package domain contains the core entities for postboard.
//
// This package defines:
//   - Entity types (User, Post)
//   - Patch types for partial updates
//   - Derived read models (PostStats)
//
// # Design Philosophy
//
// Domain types are persistence-agnostic. Stores own the records and hand out
// copies, so a value obtained from a store can be modified freely by the caller.
//
// # Naming Conventions
//
// Types ending in "Patch" describe partial updates: a nil field keeps the
// current value, a non-nil field overwrites it.
package domain
