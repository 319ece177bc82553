package history

import "github.com/gerunddev/gitpick/internal/log"

// schema is the SQL schema for the history database.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    command TEXT NOT NULL,
    action TEXT NOT NULL,
    item TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_entries_command ON entries(command);
`

// Migrate creates the schema and applies column additions to databases
// created by older versions.
func (s *Store) Migrate() error {
	if _, err := s.conn.Exec(schema); err != nil {
		return err
	}

	// Migration: scope entries to a repository.
	if exists, err := s.columnExists("entries", "repo"); err != nil {
		return err
	} else if !exists {
		if _, err := s.conn.Exec(`
			ALTER TABLE entries ADD COLUMN repo TEXT NOT NULL DEFAULT '';
		`); err != nil {
			return err
		}
	}

	if _, err := s.conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entries_repo ON entries(repo, command);
	`); err != nil {
		return err
	}

	return nil
}

// columnExists checks if a column exists in the specified table.
func (s *Store) columnExists(table, column string) (bool, error) {
	rows, err := s.conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "operation", "columnExists", "error", closeErr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
