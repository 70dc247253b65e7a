package repositories

import (
	"context"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) store.DocumentStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	s, err := store.NewGormStore(db)
	if err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return s
}

func TestCollection_AddGeneratesID(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	users := NewUserRepository(ctx, docs)

	user, err := users.Add(ctx, entities.User{Email: "a@example.com", Username: "a"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected generated id")
	}

	got, ok := users.Get(user.ID)
	if !ok || got.Email != "a@example.com" {
		t.Errorf("Expected user back by id, got %+v found=%v", got, ok)
	}
}

func TestCollection_WriteThroughCounted(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	users := NewUserRepository(ctx, docs)

	writes := metrics.Default().StoreWritesTotal.WithLabelValues(constants.ColUsers)
	before := testutil.ToFloat64(writes)

	if _, err := users.Add(ctx, entities.User{Email: "a@example.com", Username: "a"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if after := testutil.ToFloat64(writes); after != before+1 {
		t.Errorf("Expected write-through counted, got %v -> %v", before, after)
	}
}

func TestCollection_WriteThroughSurvivesReload(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	users := NewUserRepository(ctx, docs)
	user, err := users.Add(ctx, entities.User{Email: "b@example.com", Username: "b"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A fresh repository over the same store must see the mutation
	reloaded := NewUserRepository(ctx, docs)
	got, ok := reloaded.Get(user.ID)
	if !ok {
		t.Fatal("Expected user to survive reload")
	}
	if got.Username != "b" {
		t.Errorf("Expected username b, got %q", got.Username)
	}
}

func TestCollection_MutatePersists(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	users := NewUserRepository(ctx, docs)
	user, _ := users.Add(ctx, entities.User{Email: "c@example.com", Username: "c"})

	updated, found, err := users.Mutate(ctx, user.ID, func(u *entities.User) {
		u.EngagementPoints = 42
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	if !found {
		t.Fatal("Expected user to be found")
	}
	if updated.EngagementPoints != 42 {
		t.Errorf("Expected 42 points, got %d", updated.EngagementPoints)
	}

	reloaded := NewUserRepository(ctx, docs)
	got, _ := reloaded.Get(user.ID)
	if got.EngagementPoints != 42 {
		t.Errorf("Expected persisted 42 points, got %d", got.EngagementPoints)
	}
}

func TestCollection_MutateUnknownID(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	users := NewUserRepository(ctx, docs)

	_, found, err := users.Mutate(ctx, "nope", func(u *entities.User) {})
	if err != nil {
		t.Fatalf("Mutate errored: %v", err)
	}
	if found {
		t.Error("Expected found=false for unknown id")
	}
}

func TestCollection_Delete(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	users := NewUserRepository(ctx, docs)

	user, _ := users.Add(ctx, entities.User{Email: "d@example.com", Username: "d"})

	found, err := users.Delete(ctx, user.ID)
	if err != nil || !found {
		t.Fatalf("Delete failed: found=%v err=%v", found, err)
	}
	if _, ok := users.Get(user.ID); ok {
		t.Error("Expected user gone after delete")
	}
}

func TestModeratorPayouts_ReplaceForMonth(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	payouts := NewModeratorPayoutRepository(ctx, docs)

	first := []entities.ModeratorPayout{
		{Month: "2026-08", ModeratorID: "m1", Points: 10, Amount: 40},
		{Month: "2026-08", ModeratorID: "m2", Points: 10, Amount: 40},
	}
	if err := payouts.ReplaceForMonth(ctx, "2026-08", first); err != nil {
		t.Fatalf("First replace failed: %v", err)
	}

	other := entities.ModeratorPayout{Month: "2026-07", ModeratorID: "m1", Points: 5, Amount: 20}
	if _, err := payouts.Add(ctx, other); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	second := []entities.ModeratorPayout{
		{Month: "2026-08", ModeratorID: "m1", Points: 30, Amount: 80},
	}
	if err := payouts.ReplaceForMonth(ctx, "2026-08", second); err != nil {
		t.Fatalf("Second replace failed: %v", err)
	}

	got := payouts.ForMonth("2026-08")
	if len(got) != 1 || got[0].Amount != 80 {
		t.Errorf("Expected single replaced row, got %+v", got)
	}
	if len(payouts.ForMonth("2026-07")) != 1 {
		t.Error("Expected other month untouched")
	}
}

func TestLetterRepository_CountSentBetween(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()
	letters := NewLetterRepository(ctx, docs)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, time.Hour, 30 * time.Hour} {
		_, err := letters.Add(ctx, entities.Letter{
			AuthorID: "u1",
			Status:   entities.LetterPending,
			DateSent: base.Add(offset),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	letters.Add(ctx, entities.Letter{AuthorID: "u2", Status: entities.LetterPending, DateSent: base})

	n := letters.CountSentBetween("u1", base, base.Add(24*time.Hour))
	if n != 2 {
		t.Errorf("Expected 2 letters in window, got %d", n)
	}
}

func TestSettingsRepository_SeedAndUpdate(t *testing.T) {
	docs := newTestStore(t)
	ctx := context.Background()

	settings := NewSettingsRepository(ctx, docs)
	if got := settings.Get().ModeratorShareRatio; got != 0.40 {
		t.Errorf("Expected default moderator share 0.40, got %v", got)
	}

	_, err := settings.Update(ctx, func(s *entities.PlatformSettings) {
		s.UserShareRatio = 0.25
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded := NewSettingsRepository(ctx, docs)
	if got := reloaded.Get().UserShareRatio; got != 0.25 {
		t.Errorf("Expected persisted 0.25, got %v", got)
	}
	if reloaded.Get().ModeratorEmailDomain != "kholachithi.org" {
		t.Errorf("Unexpected email domain %q", reloaded.Get().ModeratorEmailDomain)
	}
}
