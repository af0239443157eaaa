package geocode

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Cache stores resolver outcomes in a local SQLite database. Zero-result
// responses are cached too, so repeated misses skip the upstream providers
// and their pacing delay.
type Cache struct {
	db      *sql.DB
	ttlDays int
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash TEXT PRIMARY KEY,
	status       TEXT NOT NULL,
	response     TEXT NOT NULL,
	cached_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_geocode_cache_cached_at ON geocode_cache(cached_at);
`

// NewCache opens (or creates) the cache database at path. ttlDays <= 0
// disables expiry.
func NewCache(path string, ttlDays int) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "geocode cache: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "geocode cache: migrate")
	}
	return &Cache{db: db, ttlDays: ttlDays}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey returns SHA-256 hex of the normalized address|country pair.
func cacheKey(address, country string) string {
	normalized := fmt.Sprintf("%s|%s",
		strings.ToLower(strings.TrimSpace(address)),
		strings.ToLower(strings.TrimSpace(country)),
	)
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// Get returns the cached canonical response, or nil when absent or expired.
func (c *Cache) Get(ctx context.Context, address, country string) (*Response, error) {
	key := cacheKey(address, country)

	query := "SELECT response FROM geocode_cache WHERE address_hash = ?"
	args := []any{key}
	if c.ttlDays > 0 {
		query += fmt.Sprintf(" AND cached_at > datetime('now', '-%d days')", c.ttlDays)
	}

	var raw string
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "geocode cache: get")
	}

	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, eris.Wrap(err, "geocode cache: decode")
	}

	keyPrefix := key
	if len(keyPrefix) > 12 {
		keyPrefix = keyPrefix[:12]
	}
	zap.L().Debug("geocode cache hit", zap.String("key", keyPrefix), zap.String("status", resp.Status))
	return &resp, nil
}

// Put stores a canonical response, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, address, country string, resp *Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return eris.Wrap(err, "geocode cache: encode")
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (address_hash, status, response, cached_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (address_hash) DO UPDATE SET
			status = excluded.status,
			response = excluded.response,
			cached_at = datetime('now')`,
		cacheKey(address, country), resp.Status, string(raw),
	)
	if err != nil {
		return eris.Wrap(err, "geocode cache: put")
	}
	return nil
}
