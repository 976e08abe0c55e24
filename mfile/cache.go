package mfile

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// cache maps content keys to *cacheEntry.
var cache sync.Map

// cacheEntry holds the outcome of assembling one distinct input.
type cacheEntry struct {
	once sync.Once
	ds   *Dataset
	err  error
}

// cacheKey combines the content hash with the options that can change the
// outcome of a load.
func cacheKey(data []byte, o options) string {
	return strconv.FormatUint(xxh3.Hash(data), 36) + ":" +
		strconv.Itoa(o.maxLineSize)
}

// loadCached assembles data once per distinct content and returns the shared
// result on every later call. A load aborted by another caller's context is
// discarded and retried under ctx.
func loadCached(ctx context.Context, data []byte, o options) (*Dataset, error) {
	key := cacheKey(data, o)

	for {
		value, hit := cache.LoadOrStore(key, new(cacheEntry))
		entry := value.(*cacheEntry)

		o.logger.TraceContext(ctx, "cache lookup",
			slog.String("key", key),
			slog.Int("source_bytes", len(data)),
			slog.Bool("cache_hit", hit),
		)

		entry.once.Do(func() {
			entry.ds, entry.err = load(ctx, bytes.NewReader(data), o)
		})

		if !isContextError(entry.err) {
			return entry.ds, entry.err
		}

		// A cancelled load says nothing about the content.
		cache.CompareAndDelete(key, entry)

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ClearCache discards every cached Dataset.
func ClearCache() {
	cache.Clear()
}
