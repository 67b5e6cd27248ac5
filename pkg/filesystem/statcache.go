package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/sfdelta/pkg/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStatCacheSize is used when a non-positive size is requested
const DefaultStatCacheSize = 4096

type statEntry struct {
	info fs.FileInfo
	err  error
}

// StatCache is a types.FS that remembers Stat results. Classification probes
// the same bundle and descriptor paths many times per run; any mutation
// through the cache drops every entry.
type StatCache struct {
	types.FS
	cache *lru.Cache[string, statEntry]
}

// NewStatCache wraps fs with an LRU of Stat results
func NewStatCache(fs types.FS, size int) (*StatCache, error) {
	if size <= 0 {
		size = DefaultStatCacheSize
	}
	cache, err := lru.New[string, statEntry](size)
	if err != nil {
		return nil, err
	}
	return &StatCache{FS: fs, cache: cache}, nil
}

func (c *StatCache) Stat(name string) (fs.FileInfo, error) {
	key := filepath.Clean(name)
	if entry, ok := c.cache.Get(key); ok {
		return entry.info, entry.err
	}
	info, err := c.FS.Stat(name)
	c.cache.Add(key, statEntry{info: info, err: err})
	return info, err
}

func (c *StatCache) WriteFile(name string, data []byte, perm fs.FileMode) error {
	c.cache.Purge()
	return c.FS.WriteFile(name, data, perm)
}

func (c *StatCache) MkdirAll(path string, perm fs.FileMode) error {
	c.cache.Purge()
	return c.FS.MkdirAll(path, perm)
}

func (c *StatCache) Remove(name string) error {
	c.cache.Purge()
	return c.FS.Remove(name)
}

func (c *StatCache) RemoveAll(path string) error {
	c.cache.Purge()
	return c.FS.RemoveAll(path)
}

// Len reports the number of cached entries
func (c *StatCache) Len() int {
	return c.cache.Len()
}
