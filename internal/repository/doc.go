// Package repository contains data access implementations for postboard.
//
// Repositories own the User and Post collections and expose
// create/read/update/delete operations keyed by integer id.
//
// # Architecture
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). This package tree contains the concrete implementations.
//
// # Data Stores
//
//   - memory: process-lifetime collections, seeded at startup and lost on restart
//
// # Identity
//
// Each store assigns ids from a monotonically increasing counter. Ids are never
// reused, even after the record holding them is deleted.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use. Each operation,
// including the merge performed by Update, runs under the store's lock, so
// concurrent updates resolve as last-write-wins.
package repository
