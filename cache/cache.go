package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pevans/patternsfeed/newsfeed"
)

// DefaultTTL is how long a collected listing stays fresh.
const DefaultTTL = 12 * time.Hour

// Store caches collected feed items in SQLite, keyed by listing URL and
// language. Entries older than the TTL are treated as missing.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries     int
	Expired     int
	OldestEntry time.Time
}

// NewStore opens (or creates) a cache database at dbPath. A non-positive ttl
// means DefaultTTL.
func NewStore(dbPath string, ttl time.Duration) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	store := &Store{db: db, ttl: ttl, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the cache table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feed_cache (
		url TEXT NOT NULL,
		lang TEXT NOT NULL,
		items TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (url, lang)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TTL returns how long entries stay fresh.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the cached items for (url, lang) if a fresh entry exists.
func (s *Store) Get(url, lang string) ([]newsfeed.FeedItem, bool, error) {
	query := "SELECT items, created_at FROM feed_cache WHERE url = ? AND lang = ?"

	var data string
	var createdAt int64
	err := s.db.QueryRow(query, url, lang).Scan(&data, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cache: %w", err)
	}

	if s.expired(createdAt) {
		return nil, false, nil
	}

	var items []newsfeed.FeedItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached items: %w", err)
	}

	return items, true, nil
}

// Set stores items for (url, lang), replacing any previous entry.
func (s *Store) Set(url, lang string, items []newsfeed.FeedItem) error {
	if items == nil {
		items = []newsfeed.FeedItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	query := "INSERT OR REPLACE INTO feed_cache (url, lang, items, created_at) VALUES (?, ?, ?, ?)"
	if _, err := s.db.Exec(query, url, lang, string(data), s.now().Unix()); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (s *Store) Purge() (int64, error) {
	cutoff := s.now().Add(-s.ttl).Unix()

	result, err := s.db.Exec("DELETE FROM feed_cache WHERE created_at <= ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

// Clear deletes every entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM feed_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats returns entry counts and the age of the oldest entry.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	cutoff := s.now().Add(-s.ttl).Unix()

	var oldest sql.NullInt64
	var expired sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COUNT(*), MIN(created_at), SUM(CASE WHEN created_at <= ? THEN 1 ELSE 0 END)
		FROM feed_cache
	`, cutoff).Scan(&stats.Entries, &oldest, &expired)
	if err != nil {
		return stats, fmt.Errorf("failed to query cache stats: %w", err)
	}

	if oldest.Valid {
		stats.OldestEntry = time.Unix(oldest.Int64, 0)
	}
	stats.Expired = int(expired.Int64)

	return stats, nil
}

func (s *Store) expired(createdAt int64) bool {
	return s.now().Sub(time.Unix(createdAt, 0)) >= s.ttl
}
