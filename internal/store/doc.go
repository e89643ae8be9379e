// Package store defines the persistence interfaces consumed by the
// service layer and the errors they return. Concrete implementations
// live under internal/platform.
package store
