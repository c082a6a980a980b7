package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bcplc/internal/diag"
	"bcplc/internal/project"
	"bcplc/internal/source"
	"bcplc/internal/version"
)

// Current schema version; increment when CachedFile changes shape.
const diskCacheSchemaVersion uint16 = 1

// CachedFile is what the cache keeps for a file that parsed without errors.
type CachedFile struct {
	Schema uint16
	Path   string
	// Names of the top-level definitions, in source order.
	Names []string
	// Warnings are replayed on a hit with their file rewritten to the current id.
	Warnings []diag.Diagnostic
}

// CacheKey identifies a file's parse result: its content hash combined with
// the compiler version, so upgrades invalidate old entries.
func CacheKey(f *source.File) project.Digest {
	return project.Combine(project.Digest(f.Hash), project.StringDigest(version.Version))
}

func newCachedFile(path string, names []string, warnings []*diag.Diagnostic) *CachedFile {
	entry := &CachedFile{Schema: diskCacheSchemaVersion, Path: path, Names: names}
	for _, w := range warnings {
		entry.Warnings = append(entry.Warnings, *w)
	}
	return entry
}

// replay returns copies of the cached warnings anchored to file.
func (c *CachedFile) replay(file source.FileID) []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, 0, len(c.Warnings))
	for i := range c.Warnings {
		d := rebase(c.Warnings[i], file)
		out = append(out, &d)
	}
	return out
}

func rebase(d diag.Diagnostic, file source.FileID) diag.Diagnostic {
	d.Primary.File = file
	if len(d.Secondary) > 0 {
		sec := make([]diag.Diagnostic, len(d.Secondary))
		for i := range d.Secondary {
			sec[i] = rebase(d.Secondary[i], file)
		}
		d.Secondary = sec
	}
	return d
}

// DiskCache stores CachedFile entries as msgpack files under one directory.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens the cache at $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes an entry, replacing any previous one atomically.
func (c *DiskCache) Put(key project.Digest, entry *CachedFile) (err error) {
	if c == nil {
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
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(entry); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Entries written with another schema count as misses.
func (c *DiskCache) Get(key project.Digest, out *CachedFile) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// Lookup implements Cache; read or decode failures count as misses.
func (c *DiskCache) Lookup(key project.Digest) (*CachedFile, bool) {
	var entry CachedFile
	ok, err := c.Get(key, &entry)
	if err != nil || !ok {
		return nil, false
	}
	return &entry, true
}

func (c *DiskCache) Store(key project.Digest, entry *CachedFile) error {
	return c.Put(key, entry)
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
