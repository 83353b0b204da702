// Package testdb provides database setup for tests.
//
// Open returns a migrated database. By default it is a private in-memory
// SQLite database, so store tests need no external services. When
// LEITNER_TEST_DB_URL is set the tests run against that PostgreSQL database
// instead; the schema is reset before each test, so those tests must not run
// in parallel.
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        cards := sqlstore.NewCardStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
