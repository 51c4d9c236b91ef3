package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQLite handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns a QuestionRepo backed by this store.
func (s *Store) Questions() QuestionRepo { return &questionRepo{db: s.db} }

// History returns a HistoryRepo backed by this store.
func (s *Store) History() HistoryRepo { return &historyRepo{db: s.db} }

// Scores returns a ScoreRepo backed by this store.
func (s *Store) Scores() ScoreRepo { return &scoreRepo{db: s.db} }

// Economy returns an EconomyRepo backed by this store.
func (s *Store) Economy() EconomyRepo { return &economyRepo{db: s.db} }

// Promos returns a PromoRepo backed by this store.
func (s *Store) Promos() PromoRepo { return &promoRepo{db: s.db} }

// applyPragmas configures SQLite for single-writer web workloads.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT 'any',
		difficulty INTEGER NOT NULL DEFAULT 1,
		text TEXT NOT NULL UNIQUE,
		tips TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_questions_cat_diff_mode
		ON questions(category, difficulty, mode);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		interest_text TEXT NOT NULL DEFAULT '',
		tokens INTEGER NOT NULL DEFAULT 0 CHECK (tokens >= 0),
		streak INTEGER NOT NULL DEFAULT 0,
		last_active TEXT NOT NULL DEFAULT '',
		subscription TEXT NOT NULL DEFAULT '',
		pro_until INTEGER,
		version INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS question_history (
		user_id TEXT NOT NULL,
		question_id INTEGER NOT NULL,
		mode TEXT NOT NULL DEFAULT 'any',
		asked_at INTEGER NOT NULL,
		answered_at INTEGER,
		quality INTEGER,
		PRIMARY KEY (user_id, question_id)
	);
	CREATE INDEX IF NOT EXISTS idx_history_user_mode_time
		ON question_history(user_id, mode, asked_at);

	CREATE TABLE IF NOT EXISTS category_scores (
		user_id TEXT NOT NULL,
		category TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		last_seen INTEGER,
		PRIMARY KEY (user_id, category)
	);

	CREATE TABLE IF NOT EXISTS promo_codes (
		code TEXT PRIMARY KEY,
		uses_left INTEGER NOT NULL DEFAULT 1,
		plan TEXT NOT NULL DEFAULT 'pro',
		days INTEGER NOT NULL DEFAULT 30,
		token_grant INTEGER NOT NULL DEFAULT 0,
		expires_at INTEGER
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. UNDO_DB environment variable
// 2. $XDG_DATA_HOME/undo/undo.db
// 3. ~/.local/share/undo/undo.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("UNDO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "undo", "undo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
