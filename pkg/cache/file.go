package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// entryExt marks cache entry files. Anything else under the directory is
// left alone by Stats, Prune, and Clear.
const entryExt = ".msgpack"

// FileCache keeps entries as msgpack files under a directory, fanned out by
// the first two characters of the hashed key. It is the CLI's default
// backend, so repeated renders of the same document skip decoding images.
type FileCache struct {
	dir string
	now func() time.Time
}

// fileEntry is the on-disk record. A zero Expires never expires.
type fileEntry struct {
	Data    []byte    `msgpack:"d"`
	Expires time.Time `msgpack:"e"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// NewFileCache opens a cache rooted at dir, creating it when needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

// read loads the entry at path. Unreadable and expired entries are removed
// and reported as absent.
func (c *FileCache) read(path string) (fileEntry, bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileEntry{}, false, nil
	}
	if err != nil {
		return fileEntry{}, false, err
	}
	var e fileEntry
	if err := msgpack.Unmarshal(raw, &e); err != nil || e.expired(c.now()) {
		_ = os.Remove(path)
		return fileEntry{}, false, nil
	}
	return e, true, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok, err := c.read(c.path(key))
	return e.Data, ok, err
}

// Set writes the entry to a temporary file in the target directory and
// renames it into place, so readers see either the old entry or the new one.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.Expires = c.now().Add(ttl)
	}
	raw, err := msgpack.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// walk calls fn for every entry file under the cache directory.
func (c *FileCache) walk(fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		return fn(path, d)
	})
}

// Stats counts the entries and bytes on disk.
func (c *FileCache) Stats() (entries int, size int64, err error) {
	err = c.walk(func(_ string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size, err
}

// Prune removes expired and unreadable entries and reports how many went.
func (c *FileCache) Prune() (removed int, err error) {
	err = c.walk(func(path string, _ fs.DirEntry) error {
		_, ok, err := c.read(path)
		if err != nil {
			return err
		}
		if !ok {
			removed++
		}
		return nil
	})
	return removed, err
}

// Clear removes every entry.
func (c *FileCache) Clear() error {
	return c.walk(func(path string, _ fs.DirEntry) error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

var _ Cache = (*FileCache)(nil)
