// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// We use modernc.org/sqlite (a pure Go translation of SQLite) rather than the
// CGo-based driver, so the binary cross-compiles without a C toolchain. The
// store is the only shared mutable state in the process — all concurrency
// correctness comes from its transactions plus the UNIQUE constraints below,
// never from in-memory locks.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Blank import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database at dbPath (":memory:" for tests) and runs the
// schema migrations.
//
// WAL mode allows concurrent reads while a write is in progress, which
// matters for a web server. Foreign keys are off by default in SQLite, so we
// turn them on explicitly.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database,
	// so pin the pool to a single connection for in-memory use.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Force an immediate connection so a bad path surfaces here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies store connectivity. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// The UNIQUE(user_id, idea_id) constraint on idea_likes is the source of
// truth for "has this user liked this idea" — the application never relies
// on a read-then-write check alone to prevent double likes.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			auth_id         TEXT NOT NULL UNIQUE,
			email           TEXT NOT NULL UNIQUE,
			name            TEXT NOT NULL DEFAULT '',
			github_username TEXT NOT NULL DEFAULT '',
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS ideas (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			image_url   TEXT NOT NULL DEFAULT '',
			solution    TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'proposed',
			difficulty  TEXT NOT NULL DEFAULT '',
			like_count  INTEGER NOT NULL DEFAULT 0,
			user_id     TEXT NOT NULL REFERENCES users(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_ideas_created_at ON ideas(created_at);
		CREATE INDEX IF NOT EXISTS idx_ideas_difficulty ON ideas(difficulty);

		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			image_url   TEXT NOT NULL DEFAULT '',
			repo_url    TEXT NOT NULL,
			live_url    TEXT NOT NULL DEFAULT '',
			tags        TEXT NOT NULL DEFAULT '[]',
			like_count  INTEGER NOT NULL DEFAULT 0,
			user_id     TEXT NOT NULL REFERENCES users(id),
			idea_id     TEXT REFERENCES ideas(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id);
		CREATE INDEX IF NOT EXISTS idx_projects_idea_id ON projects(idea_id);

		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			idea_id    TEXT NOT NULL REFERENCES ideas(id),
			user_id    TEXT NOT NULL REFERENCES users(id),
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_idea_id ON comments(idea_id);

		CREATE TABLE IF NOT EXISTS idea_likes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			idea_id    TEXT NOT NULL REFERENCES ideas(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, idea_id)
		);
		CREATE INDEX IF NOT EXISTS idx_idea_likes_idea_id ON idea_likes(idea_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces constraint errors as formatted driver errors,
// so string matching is the portable check.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
