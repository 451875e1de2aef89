// Package store defines interfaces for drink persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing handlers and services to remain
// independent of specific database technologies.
package store
