package mfile

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestLoadReader_Cache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()
	src := "X = [1 2 3];\nMap = zeros(1,3,2);\nMap(:,:,2) = [4 5 6];\n"

	first, err := LoadReader(ctx, strings.NewReader(src), WithCache(true))
	if err != nil {
		t.Fatal(err)
	}

	second, err := LoadReader(ctx, strings.NewReader(src), WithCache(true))
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected identical content to return the cached dataset")
	}

	uncached, err := LoadReader(ctx, strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if uncached == first {
		t.Error("uncached load returned the cached dataset")
	}

	if !uncached.Equal(first) {
		t.Error("cached and uncached datasets differ")
	}

	ClearCache()

	third, err := LoadReader(ctx, strings.NewReader(src), WithCache(true))
	if err != nil {
		t.Fatal(err)
	}

	if third == first {
		t.Error("ClearCache did not discard the cached dataset")
	}
}

func TestLoadReader_CacheConcurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "M = [1 2 ;3 4 ];\n"

	var wg sync.WaitGroup

	results := make([]*Dataset, 16)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ds, err := LoadString(context.Background(), src, WithCache(true))
			if err != nil {
				t.Error(err)

				return
			}

			results[i] = ds
		}()
	}

	wg.Wait()

	for i, ds := range results {
		if ds != results[0] {
			t.Errorf("result %d is not the shared dataset", i)
		}
	}
}

func TestLoadReader_CacheRetriesForeignCancel(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "X = [1 2 3];\n"

	// Leave behind the outcome of a load whose caller was cancelled.
	stale := new(cacheEntry)
	stale.once.Do(func() { stale.err = context.Canceled })
	cache.Store(cacheKey([]byte(src), makeOptions(WithCache(true))), stale)

	ds, err := LoadString(context.Background(), src, WithCache(true))
	if err != nil {
		t.Fatalf("live caller got %v", err)
	}

	if v, err := ds.Vector("X"); err != nil || len(v) != 3 {
		t.Errorf("Vector(X) = %v, %v", v, err)
	}

	again, err := LoadString(context.Background(), src, WithCache(true))
	if err != nil || again != ds {
		t.Errorf("second load = %p, %v; want cached %p", again, err, ds)
	}
}

func TestLoadReader_CacheOwnCancel(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "X = [1];\n"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := LoadString(ctx, src, WithCache(true)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := LoadString(context.Background(), src, WithCache(true)); err != nil {
		t.Fatalf("cancelled load was cached: %v", err)
	}
}

func TestLoadReader_CacheVectorIsCopy(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "X = [1 2];\n"

	first, err := LoadString(context.Background(), src, WithCache(true))
	if err != nil {
		t.Fatal(err)
	}

	v, err := first.Vector("X")
	if err != nil {
		t.Fatal(err)
	}

	v[0] = 99

	second, err := LoadString(context.Background(), src, WithCache(true))
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := second.Vector("X"); got[0] != 1 {
		t.Errorf("cached X[0] = %v after caller write, want 1", got[0])
	}
}

func TestLoadReader_CacheErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := "Map(:,:,1) = [1];\n"

	for range 2 {
		_, err := LoadString(context.Background(), src, WithCache(true))
		if !errors.Is(err, ErrUnboundTarget) {
			t.Fatalf("expected ErrUnboundTarget, got %v", err)
		}
	}
}

func TestCacheKey_DependsOnOptions(t *testing.T) {
	data := []byte("X = [1];")

	a := cacheKey(data, makeOptions())
	b := cacheKey(data, makeOptions(WithMaxLineSize(16)))

	if a == b {
		t.Error("cache key ignores the line size limit")
	}

	if a != cacheKey(data, makeOptions(WithCache(true))) {
		t.Error("cache key depends on the cache flag")
	}
}
