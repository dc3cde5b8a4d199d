package speech

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/peterbourgon/diskv/v3"

	"codeberg.org/snonux/sgs/internal/logging"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS clips (
    key        TEXT PRIMARY KEY,
    size       INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    last_used  INTEGER NOT NULL,
    hits       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS clips_last_used ON clips(last_used);
`

// Cache keeps rendered audio on disk so repeated phrases are not synthesized
// again. Clips live in a diskv store and a sqlite index tracks their size
// and last use for pruning. Keys are hashes; phrase text is never stored.
type Cache struct {
	blobs  *diskv.Diskv
	db     *sql.DB
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// CacheStats summarizes the cache contents
type CacheStats struct {
	Entries int
	Bytes   int64
	Hits    int64
}

// DefaultCacheDir returns the per-user cache directory
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "sgs", "speech")
	}
	return filepath.Join(os.TempDir(), "sgs-speech-cache")
}

// OpenCache opens or creates a cache rooted at dir
func OpenCache(dir string, logger *slog.Logger) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache index: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache index: %w", err)
	}

	blobs := diskv.New(diskv.Options{
		BasePath: filepath.Join(dir, "clips"),
		Transform: func(key string) []string {
			if len(key) < 2 {
				return nil
			}
			return []string{key[:2]}
		},
		CacheSizeMax: 8 << 20,
		PathPerm:     0700,
		FilePerm:     0600,
	})

	return &Cache{
		blobs:  blobs,
		db:     db,
		dir:    dir,
		logger: logging.OrDiscard(logger),
		now:    time.Now,
	}, nil
}

// Dir is the directory the cache lives in
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives a cache key from the synthesizer settings and the text
func Key(settings, text string) string {
	h := sha256.New()
	io.WriteString(h, settings)
	h.Write([]byte{0})
	io.WriteString(h, strings.TrimSpace(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Has reports whether key is cached
func (c *Cache) Has(key string) bool {
	return c.blobs.Has(key)
}

// Fetch copies the clip for key to dst. It reports false on a miss.
func (c *Cache) Fetch(key, dst string) (bool, error) {
	if !c.blobs.Has(key) {
		return false, nil
	}
	rc, err := c.blobs.ReadStream(key, false)
	if err != nil {
		return false, fmt.Errorf("failed to read cached clip: %w", err)
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, rc); err != nil {
		return false, fmt.Errorf("failed to copy cached clip: %w", err)
	}

	if _, err := c.db.Exec(`UPDATE clips SET last_used = ?, hits = hits + 1 WHERE key = ?`, c.now().UnixNano(), key); err != nil {
		c.logger.Warn("failed to update cache index", "error", err)
	}
	c.logger.Debug("speech cache hit", "key", key[:12])
	return true, nil
}

// Store copies src into the cache under key
func (c *Cache) Store(key, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := c.blobs.Import(src, key, false); err != nil {
		return fmt.Errorf("failed to store clip: %w", err)
	}
	now := c.now().UnixNano()
	_, err = c.db.Exec(`INSERT INTO clips (key, size, created_at, last_used, hits) VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(key) DO UPDATE SET size = excluded.size, last_used = excluded.last_used`,
		key, info.Size(), now, now)
	if err != nil {
		return fmt.Errorf("failed to index clip: %w", err)
	}
	return nil
}

// Prune evicts least recently used clips until the cache holds at most
// maxBytes. It returns the number of clips removed and the bytes freed.
func (c *Cache) Prune(maxBytes int64) (int, int64, error) {
	stats, err := c.Stats()
	if err != nil {
		return 0, 0, err
	}
	if stats.Bytes <= maxBytes {
		return 0, 0, nil
	}

	rows, err := c.db.Query(`SELECT key, size FROM clips ORDER BY last_used ASC`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query cache index: %w", err)
	}
	type clip struct {
		key  string
		size int64
	}
	var victims []clip
	total := stats.Bytes
	for rows.Next() && total > maxBytes {
		var v clip
		if err := rows.Scan(&v.key, &v.size); err != nil {
			rows.Close()
			return 0, 0, err
		}
		victims = append(victims, v)
		total -= v.size
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, 0, err
	}
	rows.Close()

	var freed int64
	for _, v := range victims {
		if err := c.blobs.Erase(v.key); err != nil && !os.IsNotExist(err) {
			return 0, 0, fmt.Errorf("failed to erase clip: %w", err)
		}
		if _, err := c.db.Exec(`DELETE FROM clips WHERE key = ?`, v.key); err != nil {
			return 0, 0, err
		}
		freed += v.size
	}
	c.logger.Info("speech cache pruned", "removed", len(victims), "freed_bytes", freed)
	return len(victims), freed, nil
}

// Stats returns entry count, total size and hit count
func (c *Cache) Stats() (CacheStats, error) {
	var s CacheStats
	err := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0), COALESCE(SUM(hits), 0) FROM clips`).
		Scan(&s.Entries, &s.Bytes, &s.Hits)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return s, nil
}

// Clear removes every clip
func (c *Cache) Clear() error {
	if err := c.blobs.EraseAll(); err != nil {
		return fmt.Errorf("failed to erase clips: %w", err)
	}
	if _, err := c.db.Exec(`DELETE FROM clips`); err != nil {
		return fmt.Errorf("failed to clear cache index: %w", err)
	}
	return nil
}

// Close releases the index database
func (c *Cache) Close() error {
	return c.db.Close()
}
