package speech

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/sgs/internal/testutil"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func writeClip(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testutil.CreateTestFile(t, path, make([]byte, size))
	return path
}

func TestKey(t *testing.T) {
	require.Equal(t, Key("espeak|en", "hello"), Key("espeak|en", " hello "))
	require.NotEqual(t, Key("espeak|en", "hello"), Key("espeak|de", "hello"))
	require.NotContains(t, Key("s", "secret phrase"), "secret")
	require.Len(t, Key("s", "x"), 64)
}

func TestCacheStoreFetch(t *testing.T) {
	c := openTestCache(t)
	dir := t.TempDir()
	src := writeClip(t, dir, "src.wav", 100)
	key := Key("s", "hello")

	hit, err := c.Fetch(key, filepath.Join(dir, "miss.wav"))
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, c.Store(key, src))
	require.True(t, c.Has(key))

	dst := filepath.Join(dir, "dst.wav")
	hit, err = c.Fetch(key, dst)
	require.NoError(t, err)
	require.True(t, hit)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Len(t, data, 100)

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, CacheStats{Entries: 1, Bytes: 100, Hits: 1}, stats)
}

func TestCachePruneEvictsLeastRecentlyUsed(t *testing.T) {
	c := openTestCache(t)
	dir := t.TempDir()

	clock := time.Unix(1000, 0)
	c.now = func() time.Time { return clock }

	keys := []string{Key("s", "a"), Key("s", "b"), Key("s", "c")}
	for i, k := range keys {
		clock = clock.Add(time.Second)
		require.NoError(t, c.Store(k, writeClip(t, dir, k[:8], 100*(i+1))))
	}

	// touch the oldest so it survives
	clock = clock.Add(time.Second)
	hit, err := c.Fetch(keys[0], filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.True(t, hit)

	removed, freed, err := c.Prune(400)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Equal(t, int64(200), freed)
	require.True(t, c.Has(keys[0]))
	require.False(t, c.Has(keys[1]))
	require.True(t, c.Has(keys[2]))

	removed, _, err = c.Prune(1 << 20)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestCacheClear(t *testing.T) {
	c := openTestCache(t)
	src := writeClip(t, t.TempDir(), "a.wav", 10)
	require.NoError(t, c.Store(Key("s", "a"), src))

	require.NoError(t, c.Clear())
	stats, err := c.Stats()
	require.NoError(t, err)
	require.Zero(t, stats.Entries)
	require.False(t, c.Has(Key("s", "a")))

	// the store is usable again after clearing
	require.NoError(t, c.Store(Key("s", "b"), src))
	require.True(t, c.Has(Key("s", "b")))
}
