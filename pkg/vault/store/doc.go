// Package store defines the persistence gateway interfaces the vault
// core depends on. The core never touches a database handle directly;
// it is constructed with these interfaces, which keeps it decoupled
// from the concrete backend and testable with doubles.
//
// The gorm subpackage provides the PostgreSQL implementations.
package store
