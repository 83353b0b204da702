// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the scheduler and services to remain
// independent of the database in use (PostgreSQL or SQLite).
package store
