// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they run equally against a
// pooled connection or an open transaction.
package postgres
