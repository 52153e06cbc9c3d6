// Package gorm provides GORM-based implementations of the store
// interfaces defined in the parent store package.
//
// Every call runs under a bounded timeout; a stuck backend surfaces as
// a transient store failure rather than an indefinite hang.
package gorm
