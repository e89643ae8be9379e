// Package memory contains in-memory implementations of the store
// interfaces, used in tests and for local development without a database.
package memory
