// Package postgres provides the PostgreSQL implementation of the storage
// interfaces defined in the internal/store package, along with the schema
// migrations for the drinks table. It handles query execution, constraint
// error translation, and mapping between domain entities and rows.
package postgres
