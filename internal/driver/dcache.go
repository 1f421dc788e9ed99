package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
)

// Current schema version - increment when cachePayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит аннотации по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema      uint16 `msgpack:"schema"`
	StoreSchema uint16 `msgpack:"store_schema"`
	Path        string `msgpack:"path"`
	Store       []byte `msgpack:"store"`
	// Diagnostics were reported while the store was built.
	Diagnostics []diag.Diagnostic `msgpack:"diagnostics,omitempty"`
}

// CacheEntry is what one cache slot holds: the balanced store and the
// diagnostics its construction produced, replayed on every hit.
type CacheEntry struct {
	Store       *annot.Store
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache creates the cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("driver: empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "stores", hex.EncodeToString(key[:])+".mp")
}

// Put writes entry under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key [32]byte, path string, entry CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	raw, err := entry.Store.MarshalBinary()
	if err != nil {
		return err
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
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	payload := cachePayload{
		Schema:      diskCacheSchemaVersion,
		StoreSchema: annot.StoreSchema,
		Path:        path,
		Store:       raw,
		Diagnostics: entry.Diagnostics,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get returns the entry recorded for key. Entries written by another schema
// are reported as misses.
func (c *DiskCache) Get(key [32]byte) (CacheEntry, bool, error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return CacheEntry{}, false, fmt.Errorf("driver: cache entry %x: %w", key[:4], err)
	}
	if payload.Schema != diskCacheSchemaVersion || payload.StoreSchema != annot.StoreSchema {
		return CacheEntry{}, false, nil
	}
	store, err := annot.DecodeMsgpack(bytes.NewReader(payload.Store))
	if err != nil {
		return CacheEntry{}, false, err
	}
	return CacheEntry{Store: store, Diagnostics: payload.Diagnostics}, true, nil
}

// DropAll removes every cached store.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "stores"))
}
