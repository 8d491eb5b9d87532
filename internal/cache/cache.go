// Package cache provides a disk-backed, time-expiring store for upstream
// API responses. Entries are keyed by a deterministic SHA-256 digest over
// the canonicalized (endpoint, sorted parameter set) tuple, so parameter
// insertion order never affects cache identity and keys are stable across
// runs and processes.
//
// The cache is strictly best-effort: every read or write failure (missing
// file, corrupt JSON, permission error) is logged and reported as a miss,
// never propagated to the calling fetch. Concurrent writers to the same key
// are resolved last-write-wins via an atomic temp-file rename; a torn or
// partially written entry can never be observed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	// cacheHits counts lookups that returned a fresh stored payload.
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_cache_hits_total",
		Help: "Total number of response cache hits.",
	})

	// cacheMisses counts lookups that found nothing usable, including
	// entries discarded for staleness or corruption.
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_cache_misses_total",
		Help: "Total number of response cache misses.",
	})

	// cacheWriteErrors counts store operations that failed and were dropped.
	cacheWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_cache_write_errors_total",
		Help: "Total number of failed response cache writes.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheWriteErrors)
}

// entry is the on-disk representation: a write timestamp plus the opaque
// JSON payload exactly as received from upstream.
type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

// Cache is a long-lived handle to one cache directory. It is safe for
// concurrent use; all state lives on disk.
type Cache struct {
	dir string
	ttl time.Duration

	// now is swapped out by tests to control expiry.
	now func() time.Time
}

// New creates the cache directory if needed and returns a handle. A
// non-positive ttl falls back to one hour.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Key returns the deterministic cache key for an endpoint and parameter
// set: a SHA-256 hex digest over "endpoint?k1=v1&k2=v2…" with parameter
// names sorted lexicographically. Credentials must not be part of params;
// the caller strips them before keying.
func Key(endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('?')
	for i, k := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the stored payload for (endpoint, params) if present and
// younger than the TTL. Stale entries are deleted as a side effect and
// reported as a miss, as is any unreadable or corrupt entry.
func (c *Cache) Lookup(endpoint string, params map[string]string) (json.RawMessage, bool) {
	path := c.path(endpoint, params)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("cache read failed")
		}
		cacheMisses.Inc()
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cache entry corrupt, discarding")
		_ = os.Remove(path)
		cacheMisses.Inc()
		return nil, false
	}

	if c.now().Sub(e.StoredAt) > c.ttl {
		_ = os.Remove(path)
		cacheMisses.Inc()
		return nil, false
	}

	cacheHits.Inc()
	return e.Payload, true
}

// Store persists payload under (endpoint, params) with a fresh timestamp,
// overwriting any prior entry for the same key. Failures are logged and
// swallowed; the primary fetch path never depends on a successful write.
func (c *Cache) Store(endpoint string, params map[string]string, payload json.RawMessage) {
	path := c.path(endpoint, params)

	raw, err := json.Marshal(entry{StoredAt: c.now().UTC(), Payload: payload})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cache encode failed")
		cacheWriteErrors.Inc()
		return
	}

	// Write to a temp file in the same directory, then rename. Rename is
	// atomic on POSIX, so concurrent writers to one key leave the last
	// complete entry in place.
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cache write failed")
		cacheWriteErrors.Inc()
		return
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		log.Warn().Err(err).Str("path", path).Msg("cache write failed")
		cacheWriteErrors.Inc()
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		log.Warn().Err(err).Str("path", path).Msg("cache write failed")
		cacheWriteErrors.Inc()
		return
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		log.Warn().Err(err).Str("path", path).Msg("cache rename failed")
		cacheWriteErrors.Inc()
		return
	}
}

// path maps a key to its file inside the cache directory.
func (c *Cache) path(endpoint string, params map[string]string) string {
	return filepath.Join(c.dir, Key(endpoint, params)+".json")
}
