// Package history records the actions run from the pickers so that the next
// session can highlight the action used last.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gerunddev/gitpick/internal/log"
)

// ErrNotFound is returned when a requested record is not found.
var ErrNotFound = errors.New("record not found")

// Entry is one recorded action.
type Entry struct {
	ID        string
	Command   string
	Action    string
	Item      string
	Repo      string
	CreatedAt time.Time
}

// Store holds the database connection and provides methods for data access.
type Store struct {
	conn *sql.DB
}

// New opens the history database at path, creating it and its parent
// directory if needed. If the path is ":memory:", an in-memory database is
// created.
func New(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A second connection to ":memory:" would see a different, empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn("failed to close connection after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.Migrate(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn("failed to close connection after migration failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record stores an entry, filling in its ID and timestamp.
func (s *Store) Record(e *Entry) error {
	if e.Command == "" || e.Action == "" {
		return errors.New("history entry needs a command and an action")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now().UTC()

	_, err := s.conn.Exec(`
		INSERT INTO entries (id, command, action, item, repo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Command, e.Action, e.Item, e.Repo, e.CreatedAt,
	)
	return err
}

// LastAction returns the action key most recently recorded for command in
// repo. It returns ErrNotFound when there is none.
func (s *Store) LastAction(command, repo string) (string, error) {
	var action string
	err := s.conn.QueryRow(`
		SELECT action FROM entries
		WHERE command = ? AND repo = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`, command, repo,
	).Scan(&action)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return action, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.conn.Query(`
		SELECT id, command, action, item, repo, created_at
		FROM entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "operation", "Recent", "error", closeErr)
		}
	}()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Command, &e.Action, &e.Item, &e.Repo, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a single entry.
func (s *Store) Delete(id string) error {
	result, err := s.conn.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	result, err := s.conn.Exec(`DELETE FROM entries`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
