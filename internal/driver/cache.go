package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cstyle/internal/project"
)

// Current schema version - increment when CleanPayload format changes
const cleanCacheSchemaVersion uint16 = 1

// CleanCache remembers which file contents are already in canonical style, so
// repeat runs can skip the rewrite passes for them. Entries are keyed by the
// content digest salted with the active rule fingerprint: changing a rule
// invalidates every verdict. Thread-safe for concurrent access.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
}

// CleanPayload stores one cached style verdict.
type CleanPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Path of the file that produced the verdict, kept for inspection only;
	// the verdict itself depends on content, not location.
	Path string

	// Content digest the verdict applies to.
	Hash project.Digest

	// When the verdict was recorded.
	Stamp int64
}

// OpenCleanCache initializes and returns a cache at the standard location.
func OpenCleanCache(app string) (*CleanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

// OpenCleanCacheAt returns a cache rooted at an explicit directory. Used by
// tests and by runs that must not touch the user cache.
func OpenCleanCacheAt(dir string) (*CleanCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *CleanCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *CleanCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "clean".
	return filepath.Join(c.dir, "clean", hexKey+".mp")
}

// Put serializes and writes a verdict to the cache.
func (c *CleanCache) Put(key project.Digest, payload *CleanPayload) error {
	if c == nil {
		return nil
	}
	if !IsSHA256(key) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	err = enc.Encode(payload)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a verdict from the cache. A missing entry is not an error.
func (c *CleanCache) Get(key project.Digest, out *CleanPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cleanCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after rule changes.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// IsSHA256 performs a basic sanity check that the digest is a non-zero SHA-256 value.
func IsSHA256(d project.Digest) bool {
	var z project.Digest
	return d != z
}
