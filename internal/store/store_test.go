package store

import (
	"context"
	"errors"
	"testing"

	"khola-chithi/engine/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	s, err := NewGormStore(db)
	if err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return s
}

func TestGormStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := testDoc{Name: "letters", Count: 3}
	if err := s.Save(ctx, "test_key", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out testDoc
	if err := s.Load(ctx, "test_key", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}
}

func TestGormStore_SaveReplacesPriorContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "test_key", testDoc{Name: "v1"}); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := s.Save(ctx, "test_key", testDoc{Name: "v2", Count: 9}); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	var out testDoc
	if err := s.Load(ctx, "test_key", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Name != "v2" || out.Count != 9 {
		t.Errorf("Expected replacement, got %+v", out)
	}
}

func TestGormStore_LoadMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out testDoc
	err := s.Load(context.Background(), "absent", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadOrSeed_MissingReturnsSeed(t *testing.T) {
	s := newTestStore(t)

	seed := []testDoc{{Name: "seed"}}
	got := LoadOrSeed(context.Background(), s, "absent", seed)
	if len(got) != 1 || got[0].Name != "seed" {
		t.Errorf("Expected seed back, got %+v", got)
	}
}

func TestLoadOrSeed_CorruptReturnsSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Write a body that cannot parse as []testDoc
	doc := Document{Key: "corrupt", Body: []byte(`{"not":"an array"`)}
	if err := s.db.Create(&doc).Error; err != nil {
		t.Fatalf("Failed to plant corrupt row: %v", err)
	}

	failuresBefore := testutil.ToFloat64(metrics.Default().StoreLoadFailuresTotal)

	seed := []testDoc{{Name: "fallback"}}
	got := LoadOrSeed(ctx, s, "corrupt", seed)
	if len(got) != 1 || got[0].Name != "fallback" {
		t.Errorf("Expected fallback seed, got %+v", got)
	}

	failuresAfter := testutil.ToFloat64(metrics.Default().StoreLoadFailuresTotal)
	if failuresAfter != failuresBefore+1 {
		t.Errorf("Expected load failure counted, got %v -> %v", failuresBefore, failuresAfter)
	}
}

func TestLoadOrSeed_MissingNotCountedAsFailure(t *testing.T) {
	s := newTestStore(t)

	failuresBefore := testutil.ToFloat64(metrics.Default().StoreLoadFailuresTotal)
	LoadOrSeed(context.Background(), s, "absent", []testDoc{})
	failuresAfter := testutil.ToFloat64(metrics.Default().StoreLoadFailuresTotal)

	if failuresAfter != failuresBefore {
		t.Errorf("Expected first-boot seeding uncounted, got %v -> %v", failuresBefore, failuresAfter)
	}
}

func TestLoadOrSeed_ExistingWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "present", []testDoc{{Name: "stored"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := LoadOrSeed(ctx, s, "present", []testDoc{{Name: "seed"}})
	if len(got) != 1 || got[0].Name != "stored" {
		t.Errorf("Expected stored value, got %+v", got)
	}
}
