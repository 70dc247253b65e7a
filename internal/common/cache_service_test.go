package common

import (
	"errors"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCacheService_GetOrSet(t *testing.T) {
	cs := NewCacheService(60, 120)
	key := string(constants.CachePrefixSettings) + "current"

	hits := metrics.Default().CacheHitsTotal.WithLabelValues(string(constants.CachePrefixSettings))
	misses := metrics.Default().CacheMissesTotal.WithLabelValues(string(constants.CachePrefixSettings))
	hitsBefore := testutil.ToFloat64(hits)
	missesBefore := testutil.ToFloat64(misses)

	loads := 0
	loader := func() (any, error) {
		loads++
		return "value", nil
	}

	val, err := cs.GetOrSet(key, time.Minute, loader)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}
	if val != "value" || loads != 1 {
		t.Errorf("Expected loader called once, got val=%v loads=%d", val, loads)
	}

	// Second call is served from cache
	val, err = cs.GetOrSet(key, time.Minute, loader)
	if err != nil {
		t.Fatalf("GetOrSet failed: %v", err)
	}
	if val != "value" || loads != 1 {
		t.Errorf("Expected cached value, got val=%v loads=%d", val, loads)
	}

	if got := testutil.ToFloat64(misses); got != missesBefore+1 {
		t.Errorf("Expected 1 miss counted, got %v -> %v", missesBefore, got)
	}
	if got := testutil.ToFloat64(hits); got != hitsBefore+1 {
		t.Errorf("Expected 1 hit counted, got %v -> %v", hitsBefore, got)
	}
}

func TestCacheService_GetOrSetLoaderError(t *testing.T) {
	cs := NewCacheService(60, 120)

	wantErr := errors.New("load failed")
	if _, err := cs.GetOrSet("SETTINGS_broken", time.Minute, func() (any, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("Expected loader error, got %v", err)
	}

	// A failed load must not poison the cache
	if _, found := cs.Get("SETTINGS_broken"); found {
		t.Error("Expected nothing cached after loader error")
	}
}

func TestCacheKeyPrefix(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"SETTINGS_current", string(constants.CachePrefixSettings)},
		{"AD_CATALOG_active", string(constants.CachePrefixAdCatalog)},
		{"SESSION_93f1c2", string(constants.CachePrefixSession)},
		{"unknown_key", "other"},
	}
	for _, tc := range cases {
		if got := cacheKeyPrefix(tc.key); got != tc.want {
			t.Errorf("cacheKeyPrefix(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
