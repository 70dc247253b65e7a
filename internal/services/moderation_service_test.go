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

type moderationFixture struct {
	svc          *ModerationService
	users        *repositories.UserRepository
	applications *repositories.ModeratorApplicationRepository
	badges       *repositories.BadgeRepository
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()

	docs := newTestStore(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(ctx, docs)
	applications := repositories.NewModeratorApplicationRepository(ctx, docs)
	badges := repositories.NewBadgeRepository(ctx, docs)
	settings := repositories.NewSettingsRepository(ctx, docs)

	return &moderationFixture{
		svc:          NewModerationService(users, applications, badges, settings),
		users:        users,
		applications: applications,
		badges:       badges,
	}
}

func TestRegisterUser_RoleByEmailDomain(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	member, err := f.svc.RegisterUser(ctx, "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if member.Role != constants.RoleUser {
		t.Errorf("Expected user role, got %s", member.Role)
	}

	mod, err := f.svc.RegisterUser(ctx, "Bob@KholaChithi.org", "bob")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if mod.Role != constants.RoleModerator {
		t.Errorf("Expected moderator role for staff domain, got %s", mod.Role)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	if _, err := f.svc.RegisterUser(ctx, "alice@example.com", "alice"); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if _, err := f.svc.RegisterUser(ctx, "alice@example.com", "alice2"); !errors.Is(err, constants.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestReviewApplication_ApprovePromotes(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	applicant := addUser(t, f.users, constants.RoleUser, "hopeful@example.com")
	app, err := f.svc.ApplyForModerator(ctx, applicant.ID, "I want to help")
	if err != nil {
		t.Fatalf("ApplyForModerator failed: %v", err)
	}
	if app.Status != entities.ApplicationPending {
		t.Errorf("Expected pending application, got %s", app.Status)
	}

	reviewed, err := f.svc.ReviewApplication(ctx, app.ID, true)
	if err != nil {
		t.Fatalf("ReviewApplication failed: %v", err)
	}
	if reviewed.Status != entities.ApplicationApproved {
		t.Errorf("Expected approved, got %s", reviewed.Status)
	}

	got, _ := f.users.Get(applicant.ID)
	if got.Role != constants.RoleModerator {
		t.Errorf("Expected promotion to moderator, got %s", got.Role)
	}
}

func TestReviewApplication_RejectKeepsRole(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	applicant := addUser(t, f.users, constants.RoleUser, "hopeful@example.com")
	app, _ := f.svc.ApplyForModerator(ctx, applicant.ID, "statement")

	reviewed, err := f.svc.ReviewApplication(ctx, app.ID, false)
	if err != nil {
		t.Fatalf("ReviewApplication failed: %v", err)
	}
	if reviewed.Status != entities.ApplicationRejected {
		t.Errorf("Expected rejected, got %s", reviewed.Status)
	}

	got, _ := f.users.Get(applicant.ID)
	if got.Role != constants.RoleUser {
		t.Errorf("Expected role unchanged, got %s", got.Role)
	}
}

func TestReviewApplication_AlreadyReviewed(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	applicant := addUser(t, f.users, constants.RoleUser, "hopeful@example.com")
	app, _ := f.svc.ApplyForModerator(ctx, applicant.ID, "statement")
	f.svc.ReviewApplication(ctx, app.ID, false)

	if _, err := f.svc.ReviewApplication(ctx, app.ID, true); !errors.Is(err, constants.ErrAlreadyReviewed) {
		t.Errorf("Expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestWarnAndSuspend(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	user := addUser(t, f.users, constants.RoleUser, "u@example.com")

	warned, err := f.svc.WarnUser(ctx, user.ID, "inappropriate language")
	if err != nil {
		t.Fatalf("WarnUser failed: %v", err)
	}
	if len(warned.Warnings) != 1 || warned.Warnings[0].Reason != "inappropriate language" {
		t.Errorf("Unexpected warnings %+v", warned.Warnings)
	}

	until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	suspended, err := f.svc.SuspendUser(ctx, user.ID, until)
	if err != nil {
		t.Fatalf("SuspendUser failed: %v", err)
	}
	if suspended.SuspendedUntil == nil || !suspended.SuspendedUntil.Equal(until) {
		t.Errorf("Expected suspension until %v, got %v", until, suspended.SuspendedUntil)
	}
	if !suspended.IsSuspended(until.Add(-time.Hour)) {
		t.Error("Expected user suspended before deadline")
	}
	if suspended.IsSuspended(until) {
		t.Error("Expected suspension lifted at deadline")
	}
}

func TestAwardBadge_SetSemantics(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	user := addUser(t, f.users, constants.RoleUser, "u@example.com")
	badge, err := f.badges.Add(ctx, entities.Badge{Name: "Kind Heart"})
	if err != nil {
		t.Fatalf("Failed to add badge: %v", err)
	}

	if _, err := f.svc.AwardBadge(ctx, user.ID, badge.ID); err != nil {
		t.Fatalf("AwardBadge failed: %v", err)
	}
	got, err := f.svc.AwardBadge(ctx, user.ID, badge.ID)
	if err != nil {
		t.Fatalf("Repeat AwardBadge failed: %v", err)
	}
	if len(got.AwardedBadges) != 1 {
		t.Errorf("Expected badge awarded once, got %v", got.AwardedBadges)
	}

	if _, err := f.svc.AwardBadge(ctx, user.ID, "no-such-badge"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown badge, got %v", err)
	}
}

func TestAdjustEngagementPoints(t *testing.T) {
	f := newModerationFixture(t)
	ctx := context.Background()

	user := addUser(t, f.users, constants.RoleUser, "u@example.com")
	f.users.Mutate(ctx, user.ID, func(u *entities.User) { u.EngagementPoints = 50 })

	got, err := f.svc.AdjustEngagementPoints(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("AdjustEngagementPoints failed: %v", err)
	}
	if got.EngagementPoints != 5 {
		t.Errorf("Expected points set to 5, got %d", got.EngagementPoints)
	}

	if _, err := f.svc.AdjustEngagementPoints(ctx, "missing", 1); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
