// Package sqlstore implements the store interfaces on top of sqlx, for both
// PostgreSQL and SQLite. Queries are written with '?' placeholders and
// rebound for the connection's driver.
package sqlstore
