package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

type Config struct {
	Path string
}

const memoryPath = ":memory:"

// creates a new db conn & runs migrations
func NewDB(cfg Config) (*DB, error) {
	if cfg.Path != memoryPath {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// open SQLite connection
	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every connection to :memory: is its own database
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: db}, nil
}

// executes db schema
func runMigrations(db *sql.DB) error {
	schema := `
	-- artist catalogue used by the local search backend
	CREATE TABLE IF NOT EXISTS artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		styles TEXT NOT NULL DEFAULT '[]',
		city TEXT NOT NULL DEFAULT '',
		postcode TEXT,
		difficulty TEXT,
		rating REAL NOT NULL DEFAULT 0,
		price_min INTEGER NOT NULL DEFAULT 0,
		price_max INTEGER NOT NULL DEFAULT 0,
		available INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,

		CHECK(name != ''),
		CHECK(length(name) <= 200),
		CHECK(rating >= 0 AND rating <= 5),
		CHECK(price_min >= 0 AND price_max >= 0),
		CHECK(difficulty IS NULL OR difficulty IN ('beginner', 'intermediate', 'advanced'))
	);

	CREATE INDEX IF NOT EXISTS idx_artists_city ON artists(city);
	CREATE INDEX IF NOT EXISTS idx_artists_rating ON artists(rating);
	CREATE INDEX IF NOT EXISTS idx_artists_available ON artists(available);
	CREATE INDEX IF NOT EXISTS idx_artists_created_at ON artists(created_at);

	CREATE TRIGGER IF NOT EXISTS update_artists_updated_at
		AFTER UPDATE ON artists
		FOR EACH ROW
	BEGIN
		UPDATE artists SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
	END;

	-- named queries the user can run again
	CREATE TABLE IF NOT EXISTS saved_searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		query TEXT NOT NULL,
		is_favorite INTEGER NOT NULL DEFAULT 0,
		hot_key INTEGER UNIQUE,
		last_accessed DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,

		CHECK(name != ''),
		CHECK(query != ''),
		CHECK(hot_key IS NULL OR (hot_key >= 1 AND hot_key <= 9))
	);

	-- durable key/value storage (search history lives here)
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,

		CHECK(key != '')
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
