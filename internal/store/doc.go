// Package store defines the persistence interfaces and shared transaction
// machinery. Concrete implementations live in internal/platform/postgres.
package store
