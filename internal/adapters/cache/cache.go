// Package cache memoizes the include analysis of individual script files.
package cache

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/ahkdeps/internal/adapters/directive"
	"go.trai.ch/ahkdeps/internal/core/domain"
	"go.trai.ch/ahkdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const byteOrderMark = "\ufeff"

var _ ports.DependencyCache = (*Cache)(nil)

// Cache implements ports.DependencyCache.
//
// Concurrent misses for the same file share one read. An entry computed while
// the file was being invalidated is discarded instead of stored.
type Cache struct {
	resolver ports.PathResolver
	logger   ports.Logger
	store    store
	group    singleflight.Group

	mu          sync.Mutex
	epoch       uint64
	generations map[domain.SourceFile]uint64
}

// stamp identifies the invalidation state an analysis was computed under.
type stamp struct {
	epoch, gen uint64
}

// New creates a Cache. A positive maxEntries bounds the cache with LRU
// eviction; zero keeps every entry until it is invalidated.
func New(resolver ports.PathResolver, logger ports.Logger, maxEntries int) (*Cache, error) {
	var s store
	switch {
	case maxEntries < 0:
		return nil, zerr.With(domain.ErrInvalidLimit, "cache.maxEntries", maxEntries)
	case maxEntries == 0:
		s = newMapStore()
	default:
		l, err := lru.New[domain.SourceFile, domain.DependencyInfo](maxEntries)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
		}
		s = lruStore{l: l}
	}

	return &Cache{
		resolver:    resolver,
		logger:      logger,
		store:       s,
		generations: make(map[domain.SourceFile]uint64),
	}, nil
}

// Analyze returns the include analysis of file, reading it on a miss.
// A canceled ctx returns an empty analysis to its caller only; callers
// sharing the same read still receive the full result.
func (c *Cache) Analyze(ctx context.Context, file string) domain.DependencyInfo {
	key := domain.NewSourceFile(file)
	if key.IsZero() || ctx.Err() != nil {
		return domain.DependencyInfo{}
	}
	if info, ok := c.store.get(key); ok {
		return info.Clone()
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.Path(), func() (any, error) {
		if info, ok := c.store.get(key); ok {
			return info, nil
		}
		st := c.stamp(key)
		info, cacheable := c.compute(shared, key.Path())
		if cacheable {
			c.storeIfCurrent(key, st, info)
		}
		return info, nil
	})

	select {
	case res := <-ch:
		info, _ := res.Val.(domain.DependencyInfo)
		return info.Clone()
	case <-ctx.Done():
		return domain.DependencyInfo{}
	}
}

// Invalidate drops the cached analysis of file. Unknown files are ignored.
func (c *Cache) Invalidate(file string) {
	key := domain.NewSourceFile(file)
	if key.IsZero() {
		return
	}
	c.mu.Lock()
	c.generations[key]++
	c.store.remove(key)
	c.mu.Unlock()
}

// Purge drops every cached analysis.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.epoch++
	c.store.purge()
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.store.len()
}

// Contains reports whether file currently has a cached analysis.
func (c *Cache) Contains(file string) bool {
	_, ok := c.store.get(domain.NewSourceFile(file))
	return ok
}

func (c *Cache) stamp(key domain.SourceFile) stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stamp{epoch: c.epoch, gen: c.generations[key]}
}

func (c *Cache) storeIfCurrent(key domain.SourceFile, st stamp, info domain.DependencyInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != st.epoch || c.generations[key] != st.gen {
		return
	}
	c.store.put(key, info)
}

// compute reads and analyzes path. The second result is false when the
// outcome must not be cached, i.e. the file does not exist.
func (c *Cache) compute(ctx context.Context, path string) (domain.DependencyInfo, bool) {
	if ctx.Err() != nil {
		return domain.DependencyInfo{}, false
	}

	stat, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			c.logger.Warn(fmt.Sprintf("could not stat %s: %v", path, err))
		}
		return domain.DependencyInfo{}, false
	}
	if !stat.Mode().IsRegular() {
		return domain.DependencyInfo{}, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("could not read %s: %v", path, err))
		return domain.DependencyInfo{}, true
	}

	text := strings.TrimPrefix(string(content), byteOrderMark)
	if !utf8.ValidString(text) {
		c.logger.Warn(fmt.Sprintf("could not decode %s: not valid UTF-8", path))
		return domain.DependencyInfo{}, true
	}

	return c.analyze(path, text), true
}

func (c *Cache) analyze(path, text string) domain.DependencyInfo {
	info := domain.DependencyInfo{RawIncludes: directive.Extract(text)}
	for _, raw := range info.RawIncludes {
		if resolved, ok := c.resolver.Resolve(raw, path); ok {
			info.ResolvedIncludes = append(info.ResolvedIncludes, domain.NormalizePath(resolved))
			continue
		}
		info.UnresolvedIncludes = append(info.UnresolvedIncludes, raw)
	}
	return info
}
