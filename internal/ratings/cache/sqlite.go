package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache implements the Cache interface using SQLite for persistence.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache creates a new SQLite-backed cache.
// The database file and table are auto-created if they don't exist.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cache_key TEXT UNIQUE NOT NULL,
			record_json BLOB NOT NULL,
			cached_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_key ON scores(cache_key);
		CREATE INDEX IF NOT EXISTS idx_scores_expires_at ON scores(expires_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Get retrieves data from the cache by key.
// Returns the data and true if found and not expired, otherwise nil and false.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var data []byte
	var expiresAt time.Time

	err := c.db.QueryRow(
		"SELECT record_json, expires_at FROM scores WHERE cache_key = ?",
		key,
	).Scan(&data, &expiresAt)

	if err != nil {
		return nil, false
	}

	if time.Now().After(expiresAt) {
		c.db.Exec("DELETE FROM scores WHERE cache_key = ?", key)
		return nil, false
	}

	return data, true
}

// Set stores data in the cache with the given key and TTL.
func (c *SQLiteCache) Set(key string, data []byte, ttl time.Duration) error {
	now := time.Now()

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO scores (cache_key, record_json, cached_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		key, data, now, now.Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("setting cache entry: %w", err)
	}

	return nil
}

// Clear removes all entries from the cache.
func (c *SQLiteCache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *SQLiteCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
