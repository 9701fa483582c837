package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/statloom/statloom-cli/internal/utils"
)

// Open opens (creating if needed) the SQLite file backing sessions and
// projects, and applies the schema.
func Open(path string) (*sql.DB, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("prepare store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrate creates the two tables. Both statements are idempotent so every
// open is safe.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			user_id       TEXT PRIMARY KEY,
			dataset_id    TEXT NOT NULL,
			file_path     TEXT NOT NULL,
			origin        TEXT NOT NULL DEFAULT 'upload',
			schema_json   TEXT NOT NULL,
			last_analysis TEXT NOT NULL DEFAULT '',
			last_result   TEXT NOT NULL DEFAULT '',
			created_at    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			title          TEXT NOT NULL,
			file_reference TEXT NOT NULL,
			context_json   TEXT NOT NULL,
			created_at     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, created_at)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate store: %w", err)
		}
	}
	return nil
}
