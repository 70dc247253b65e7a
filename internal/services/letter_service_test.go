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

type letterFixture struct {
	svc     *LetterService
	rules   *RulesService
	letters *repositories.LetterRepository
	users   *repositories.UserRepository
}

func newLetterFixture(t *testing.T, now time.Time) *letterFixture {
	t.Helper()

	docs := newTestStore(t)
	ctx := context.Background()
	letters := repositories.NewLetterRepository(ctx, docs)
	users := repositories.NewUserRepository(ctx, docs)
	settings := repositories.NewSettingsRepository(ctx, docs)

	rules := NewRulesService(users, settings)
	rules.now = fixedClock(now)
	svc := NewLetterService(letters, users, rules)
	svc.now = fixedClock(now)

	return &letterFixture{svc: svc, rules: rules, letters: letters, users: users}
}

func TestLetterLifecycle(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	mod := addUser(t, f.users, constants.RoleModerator, "mod@kholachithi.org")

	letter, err := f.svc.SendLetter(ctx, author.ID, "subject", "body")
	if err != nil {
		t.Fatalf("SendLetter failed: %v", err)
	}
	if letter.Status != entities.LetterPending {
		t.Errorf("Expected pending status, got %s", letter.Status)
	}
	if !letter.DateSent.Equal(now) {
		t.Errorf("Expected date sent %v, got %v", now, letter.DateSent)
	}

	gotAuthor, _ := f.users.Get(author.ID)
	if gotAuthor.EngagementPoints != 10 {
		t.Errorf("Expected 10 engagement points, got %d", gotAuthor.EngagementPoints)
	}

	letter, err = f.svc.AssignLetter(ctx, letter.ID, mod.ID)
	if err != nil {
		t.Fatalf("AssignLetter failed: %v", err)
	}
	if letter.ModeratorID == nil || *letter.ModeratorID != mod.ID {
		t.Errorf("Expected moderator %s, got %v", mod.ID, letter.ModeratorID)
	}

	replyAt := now.Add(2 * time.Hour)
	f.svc.now = fixedClock(replyAt)
	f.rules.now = fixedClock(replyAt)

	letter, err = f.svc.ReplyToLetter(ctx, letter.ID, mod.ID, "a kind reply")
	if err != nil {
		t.Fatalf("ReplyToLetter failed: %v", err)
	}
	if letter.Status != entities.LetterReplied {
		t.Errorf("Expected replied status, got %s", letter.Status)
	}
	if letter.DateReplied == nil || !letter.DateReplied.Equal(replyAt) {
		t.Errorf("Expected date replied %v, got %v", replyAt, letter.DateReplied)
	}

	gotMod, _ := f.users.Get(mod.ID)
	if points, _ := gotMod.PerformanceFor("2026-08"); points != 30 {
		t.Errorf("Expected 30 points for fast reply, got %d", points)
	}

	letter, err = f.svc.RateLetter(ctx, letter.ID, 9)
	if err != nil {
		t.Fatalf("RateLetter failed: %v", err)
	}
	if letter.ModeratorRating == nil || *letter.ModeratorRating != 9 {
		t.Errorf("Expected rating 9, got %v", letter.ModeratorRating)
	}

	gotAuthor, _ = f.users.Get(author.ID)
	if gotAuthor.EngagementPoints != 15 {
		t.Errorf("Expected 15 engagement points after good rating, got %d", gotAuthor.EngagementPoints)
	}
	gotMod, _ = f.users.Get(mod.ID)
	if points, _ := gotMod.PerformanceFor("2026-08"); points != 45 {
		t.Errorf("Expected 45 moderator points after good rating, got %d", points)
	}
}

func TestSendLetter_SuspendedAuthor(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	until := now.Add(48 * time.Hour)
	f.users.Mutate(ctx, author.ID, func(u *entities.User) {
		u.SuspendedUntil = &until
	})

	if _, err := f.svc.SendLetter(ctx, author.ID, "s", "b"); !errors.Is(err, constants.ErrUserSuspended) {
		t.Errorf("Expected ErrUserSuspended, got %v", err)
	}
}

func TestSendLetter_UnknownAuthor(t *testing.T) {
	f := newLetterFixture(t, time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC))

	if _, err := f.svc.SendLetter(context.Background(), "missing", "s", "b"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAssignLetter_RegularUserRejected(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	letter, _ := f.svc.SendLetter(ctx, author.ID, "s", "b")

	if _, err := f.svc.AssignLetter(ctx, letter.ID, author.ID); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for non-moderator assignee, got %v", err)
	}
}

func TestReplyToLetter_AlreadyReplied(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	mod := addUser(t, f.users, constants.RoleModerator, "mod@kholachithi.org")
	letter, _ := f.svc.SendLetter(ctx, author.ID, "s", "b")
	if _, err := f.svc.ReplyToLetter(ctx, letter.ID, mod.ID, "first"); err != nil {
		t.Fatalf("First reply failed: %v", err)
	}

	if _, err := f.svc.ReplyToLetter(ctx, letter.ID, mod.ID, "second"); !errors.Is(err, constants.ErrLetterNotPending) {
		t.Errorf("Expected ErrLetterNotPending, got %v", err)
	}
}

func TestRateLetter_Validation(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	letter, _ := f.svc.SendLetter(ctx, author.ID, "s", "b")

	if _, err := f.svc.RateLetter(ctx, letter.ID, 0); !errors.Is(err, constants.ErrInvalidRating) {
		t.Errorf("Expected ErrInvalidRating for 0, got %v", err)
	}
	if _, err := f.svc.RateLetter(ctx, letter.ID, 11); !errors.Is(err, constants.ErrInvalidRating) {
		t.Errorf("Expected ErrInvalidRating for 11, got %v", err)
	}
	if _, err := f.svc.RateLetter(ctx, letter.ID, 7); !errors.Is(err, constants.ErrLetterNotReplied) {
		t.Errorf("Expected ErrLetterNotReplied for pending letter, got %v", err)
	}
}

func TestRateLetter_LowRatingPenalizesModerator(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	f := newLetterFixture(t, now)
	ctx := context.Background()

	author := addUser(t, f.users, constants.RoleUser, "author@example.com")
	mod := addUser(t, f.users, constants.RoleModerator, "mod@kholachithi.org")
	letter, _ := f.svc.SendLetter(ctx, author.ID, "s", "b")
	if _, err := f.svc.ReplyToLetter(ctx, letter.ID, mod.ID, "rushed"); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	if _, err := f.svc.RateLetter(ctx, letter.ID, 2); err != nil {
		t.Fatalf("RateLetter failed: %v", err)
	}

	gotMod, _ := f.users.Get(mod.ID)
	if points, _ := gotMod.PerformanceFor("2026-08"); points != 20 {
		t.Errorf("Expected 30 fast-reply points minus 10 penalty, got %d", points)
	}
}
