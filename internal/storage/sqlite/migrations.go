package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. The whole domain state is one
// JSON document per key; any durable key-value store would do.
const schema = `
CREATE TABLE IF NOT EXISTS app_state (
    key TEXT PRIMARY KEY,
    doc BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
