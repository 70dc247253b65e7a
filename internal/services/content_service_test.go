package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

type contentFixture struct {
	svc      *ContentService
	users    *repositories.UserRepository
	posts    *repositories.PostRepository
	memories *repositories.MemoryRepository
}

func newContentFixture(t *testing.T, now time.Time) *contentFixture {
	t.Helper()

	docs := newTestStore(t)
	ctx := context.Background()
	posts := repositories.NewPostRepository(ctx, docs)
	memories := repositories.NewMemoryRepository(ctx, docs)
	gratitude := repositories.NewGratitudeRepository(ctx, docs)
	users := repositories.NewUserRepository(ctx, docs)
	settings := repositories.NewSettingsRepository(ctx, docs)

	rules := NewRulesService(users, settings)
	rules.now = fixedClock(now)
	svc := NewContentService(posts, memories, gratitude, users, rules)
	svc.now = fixedClock(now)

	return &contentFixture{svc: svc, users: users, posts: posts, memories: memories}
}

func TestCreatePost_AwardsPoints(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")

	post, err := f.svc.CreatePost(ctx, author.ID, "a hopeful thought")
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.AuthorID != author.ID || !post.CreatedAt.Equal(now) {
		t.Errorf("Unexpected post %+v", post)
	}

	got, _ := f.users.Get(author.ID)
	if got.EngagementPoints != 5 {
		t.Errorf("Expected 5 points for new post, got %d", got.EngagementPoints)
	}

	if _, err := f.svc.CreatePost(ctx, "missing", "body"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown author, got %v", err)
	}
}

func TestToggleLikePost(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	liker := addUser(t, f.users, constants.RoleUser, "liker@example.com")
	post, _ := f.svc.CreatePost(ctx, author.ID, "body")

	basePoints := 5 // from creating the post

	liked, err := f.svc.ToggleLikePost(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("ToggleLikePost failed: %v", err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != liker.ID {
		t.Errorf("Unexpected likes %v", liked.Likes)
	}
	got, _ := f.users.Get(author.ID)
	if got.EngagementPoints != basePoints+2 {
		t.Errorf("Expected like to add 2 points, got %d", got.EngagementPoints)
	}

	// Unlike removes the like but never deducts points
	unliked, err := f.svc.ToggleLikePost(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("ToggleLikePost failed: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Errorf("Expected like removed, got %v", unliked.Likes)
	}
	got, _ = f.users.Get(author.ID)
	if got.EngagementPoints != basePoints+2 {
		t.Errorf("Expected points unchanged on unlike, got %d", got.EngagementPoints)
	}
}

func TestReportHideEscalatePost(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	mod := addUser(t, f.users, constants.RoleModerator, "mod@kholachithi.org")
	post, _ := f.svc.CreatePost(ctx, author.ID, "body")

	reported, err := f.svc.ReportPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ReportPost failed: %v", err)
	}
	if !reported.IsReported {
		t.Error("Expected post flagged as reported")
	}

	hidden, err := f.svc.HidePost(ctx, post.ID, mod.ID)
	if err != nil {
		t.Fatalf("HidePost failed: %v", err)
	}
	if !hidden.IsHidden {
		t.Error("Expected post hidden")
	}
	gotMod, _ := f.users.Get(mod.ID)
	if points, _ := gotMod.PerformanceFor("2026-08"); points != 5 {
		t.Errorf("Expected 5 review points, got %d", points)
	}

	escalated, err := f.svc.EscalatePost(ctx, post.ID)
	if err != nil {
		t.Fatalf("EscalatePost failed: %v", err)
	}
	if !escalated.EscalatedToAdmin {
		t.Error("Expected post escalated")
	}
}

func TestCreateMemory_PendingAndCooldownStamp(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")

	memory, err := f.svc.CreateMemory(ctx, author.ID, "title", "body")
	if err != nil {
		t.Fatalf("CreateMemory failed: %v", err)
	}
	if memory.Status != entities.MemoryPending {
		t.Errorf("Expected pending memory, got %s", memory.Status)
	}

	got, _ := f.users.Get(author.ID)
	if got.LastMemoryPostDate == nil || !got.LastMemoryPostDate.Equal(now) {
		t.Errorf("Expected cooldown stamp at %v, got %v", now, got.LastMemoryPostDate)
	}
	if got.EngagementPoints != 5 {
		t.Errorf("Expected 5 points for memory, got %d", got.EngagementPoints)
	}
}

func TestCreateGratitude_AwardsPoints(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")

	entry, err := f.svc.CreateGratitude(ctx, author.ID, "grateful for my pen pal")
	if err != nil {
		t.Fatalf("CreateGratitude failed: %v", err)
	}
	if entry.AuthorID != author.ID || !entry.CreatedAt.Equal(now) {
		t.Errorf("Unexpected entry %+v", entry)
	}

	got, _ := f.users.Get(author.ID)
	if got.EngagementPoints != 5 {
		t.Errorf("Expected 5 points for gratitude entry, got %d", got.EngagementPoints)
	}

	if _, err := f.svc.CreateGratitude(ctx, "missing", "body"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown author, got %v", err)
	}
}

func TestReviewMemory(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newContentFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	memory, _ := f.svc.CreateMemory(ctx, author.ID, "title", "body")

	approved, err := f.svc.ReviewMemory(ctx, memory.ID, entities.MemoryApproved)
	if err != nil {
		t.Fatalf("ReviewMemory failed: %v", err)
	}
	if approved.Status != entities.MemoryApproved {
		t.Errorf("Expected approved, got %s", approved.Status)
	}

	if _, err := f.svc.ReviewMemory(ctx, memory.ID, entities.MemoryPending); err == nil {
		t.Error("Expected error for invalid review status")
	}
	if _, err := f.svc.ReviewMemory(ctx, "missing", entities.MemoryApproved); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
