// Package database opens the application's SQL database, maps driver errors to
// store errors and applies the embedded schema migrations.
//
// Two drivers are supported: PostgreSQL through pgx's database/sql adapter and
// SQLite through the pure-Go modernc.org/sqlite driver. Both are wrapped in
// sqlx so store code can write '?' placeholders and rebind them per driver.
package database
