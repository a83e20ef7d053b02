package cache

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the Postgres cache tables if they do not exist.
// Run from cmd/dbtool or at server startup.
func InitSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address      TEXT PRIMARY KEY,
		lon          DOUBLE PRECISION NOT NULL,
		lat          DOUBLE PRECISION NOT NULL,
		result_type  TEXT NOT NULL DEFAULT '',
		result_class TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS distance_cache (
		origin      TEXT NOT NULL,
		destination TEXT NOT NULL,
		meters      DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init cache schema: %w", err)
	}

	return nil
}
