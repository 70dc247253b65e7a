package services

import (
	"context"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

type adFixture struct {
	svc       *AdService
	slots     *repositories.AdSlotRepository
	campaigns *repositories.AdCampaignRepository
	creatives *repositories.AdCreativeRepository
	users     *repositories.UserRepository
}

func newAdFixture(t *testing.T) *adFixture {
	t.Helper()

	docs := newTestStore(t)
	ctx := context.Background()
	f := &adFixture{
		slots:     repositories.NewAdSlotRepository(ctx, docs),
		campaigns: repositories.NewAdCampaignRepository(ctx, docs),
		creatives: repositories.NewAdCreativeRepository(ctx, docs),
		users:     repositories.NewUserRepository(ctx, docs),
	}
	f.svc = NewAdService(f.slots, f.campaigns, f.creatives, f.users, nil)
	f.svc.now = fixedClock(time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))
	return f
}

func (f *adFixture) addSlot(t *testing.T, active bool) entities.AdSlot {
	t.Helper()
	slot, err := f.slots.Add(context.Background(), entities.AdSlot{
		Name:     "homepage banner",
		Type:     entities.SlotBanner,
		IsActive: active,
	})
	if err != nil {
		t.Fatalf("Failed to add slot: %v", err)
	}
	return slot
}

func (f *adFixture) addCampaign(t *testing.T, status entities.CampaignStatus, priority int) entities.AdCampaign {
	t.Helper()
	campaign, err := f.campaigns.Add(context.Background(), entities.AdCampaign{
		Name:     "campaign",
		Status:   status,
		Priority: priority,
	})
	if err != nil {
		t.Fatalf("Failed to add campaign: %v", err)
	}
	return campaign
}

func (f *adFixture) addCreative(t *testing.T, campaignID string, audience ...entities.AudienceTag) entities.AdCreative {
	t.Helper()
	creative, err := f.creatives.Add(context.Background(), entities.AdCreative{
		CampaignID:       campaignID,
		Name:             "creative",
		Status:           entities.CreativeActive,
		AllowedSlotTypes: []entities.SlotType{entities.SlotBanner},
		Audience:         audience,
	})
	if err != nil {
		t.Fatalf("Failed to add creative: %v", err)
	}
	return creative
}

func TestSelectAd_BasicMatch(t *testing.T) {
	f := newAdFixture(t)
	slot := f.addSlot(t, true)
	campaign := f.addCampaign(t, entities.CampaignActive, 1)
	creative := f.addCreative(t, campaign.ID)

	got, err := f.svc.SelectAd(context.Background(), slot.ID, "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got == nil || got.ID != creative.ID {
		t.Errorf("Expected creative %s, got %+v", creative.ID, got)
	}
}

func TestSelectAd_SubscriberSeesNoAds(t *testing.T) {
	f := newAdFixture(t)
	slot := f.addSlot(t, true)
	campaign := f.addCampaign(t, entities.CampaignActive, 1)
	f.addCreative(t, campaign.ID)

	sub := addUser(t, f.users, constants.RoleUser, "premium@example.com")
	f.users.Mutate(context.Background(), sub.ID, func(u *entities.User) {
		u.SubscriptionStatus = "active"
	})

	got, err := f.svc.SelectAd(context.Background(), slot.ID, sub.ID)
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad for subscriber, got %+v", got)
	}
}

func TestSelectAd_InactiveSlot(t *testing.T) {
	f := newAdFixture(t)
	slot := f.addSlot(t, false)
	campaign := f.addCampaign(t, entities.CampaignActive, 1)
	f.addCreative(t, campaign.ID)

	got, err := f.svc.SelectAd(context.Background(), slot.ID, "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad for inactive slot, got %+v", got)
	}
}

func TestSelectAd_UnknownSlot(t *testing.T) {
	f := newAdFixture(t)

	got, err := f.svc.SelectAd(context.Background(), "missing", "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad for unknown slot, got %+v", got)
	}
}

func TestSelectAd_DanglingCampaignFailsClosed(t *testing.T) {
	f := newAdFixture(t)
	slot := f.addSlot(t, true)
	f.addCreative(t, "deleted-campaign-id")

	got, err := f.svc.SelectAd(context.Background(), slot.ID, "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad for dangling campaign, got %+v", got)
	}
}

func TestSelectAd_CampaignDateWindow(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	slot := f.addSlot(t, true)
	now := f.svc.now()

	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"no bounds", nil, nil, true},
		{"within window", ptrTime(now.Add(-time.Hour)), ptrTime(now.Add(time.Hour)), true},
		{"not yet started", ptrTime(now.Add(time.Hour)), nil, false},
		{"already ended", nil, ptrTime(now.Add(-time.Hour)), false},
		{"open end", ptrTime(now.Add(-time.Hour)), nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			campaign, err := f.campaigns.Add(ctx, entities.AdCampaign{
				Name:      tc.name,
				Status:    entities.CampaignActive,
				Priority:  1,
				StartDate: tc.start,
				EndDate:   tc.end,
			})
			if err != nil {
				t.Fatalf("Failed to add campaign: %v", err)
			}
			creative := f.addCreative(t, campaign.ID)

			got, err := f.svc.SelectAd(ctx, slot.ID, "")
			if err != nil {
				t.Fatalf("SelectAd failed: %v", err)
			}
			served := got != nil && got.ID == creative.ID
			if served != tc.want {
				t.Errorf("Expected served=%v, got %+v", tc.want, got)
			}
			f.creatives.Delete(ctx, creative.ID)
		})
	}
}

func TestSelectAd_AudienceResolution(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	slot := f.addSlot(t, true)
	campaign := f.addCampaign(t, entities.CampaignActive, 1)

	member := addUser(t, f.users, constants.RoleUser, "member@example.com")
	mod := addUser(t, f.users, constants.RoleModerator, "mod@kholachithi.org")

	cases := []struct {
		name     string
		audience []entities.AudienceTag
		viewerID string
		want     bool
	}{
		{"public creative, anonymous", []entities.AudienceTag{entities.AudiencePublicOnly}, "", true},
		{"public creative, unknown viewer id", []entities.AudienceTag{entities.AudiencePublicOnly}, "no-such-user", true},
		{"public creative, member", []entities.AudienceTag{entities.AudiencePublicOnly}, member.ID, false},
		{"logged-in creative, member", []entities.AudienceTag{entities.AudienceLoggedIn}, member.ID, true},
		{"logged-in creative, anonymous", []entities.AudienceTag{entities.AudienceLoggedIn}, "", false},
		{"moderator creative, moderator", []entities.AudienceTag{entities.AudienceModerators}, mod.ID, true},
		{"moderator creative, member", []entities.AudienceTag{entities.AudienceModerators}, member.ID, false},
		{"all tag, anonymous", []entities.AudienceTag{entities.AudienceAll}, "", true},
		{"empty audience, moderator", nil, mod.ID, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creative := f.addCreative(t, campaign.ID, tc.audience...)

			got, err := f.svc.SelectAd(ctx, slot.ID, tc.viewerID)
			if err != nil {
				t.Fatalf("SelectAd failed: %v", err)
			}
			served := got != nil && got.ID == creative.ID
			if served != tc.want {
				t.Errorf("Expected served=%v, got %+v", tc.want, got)
			}
			f.creatives.Delete(ctx, creative.ID)
		})
	}
}

func TestSelectAd_HighestPriorityWins(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	slot := f.addSlot(t, true)

	low := f.addCampaign(t, entities.CampaignActive, 1)
	high := f.addCampaign(t, entities.CampaignScheduled, 9)
	f.addCreative(t, low.ID)
	want := f.addCreative(t, high.ID)

	for i := 0; i < 5; i++ {
		got, err := f.svc.SelectAd(ctx, slot.ID, "")
		if err != nil {
			t.Fatalf("SelectAd failed: %v", err)
		}
		if got == nil || got.ID != want.ID {
			t.Fatalf("Expected creative %s on call %d, got %+v", want.ID, i, got)
		}
	}
}

func TestSelectAd_PausedExcluded(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	slot := f.addSlot(t, true)

	paused := f.addCampaign(t, entities.CampaignPaused, 9)
	f.addCreative(t, paused.ID)

	active := f.addCampaign(t, entities.CampaignActive, 1)
	pausedCreative := f.addCreative(t, active.ID)
	f.creatives.Mutate(ctx, pausedCreative.ID, func(c *entities.AdCreative) {
		c.Status = entities.CreativePaused
	})

	got, err := f.svc.SelectAd(ctx, slot.ID, "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad, got %+v", got)
	}
}

func TestSelectAd_SlotTypeMismatch(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	slot, err := f.slots.Add(ctx, entities.AdSlot{
		Name:     "sidebar",
		Type:     entities.SlotSidebar,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Failed to add slot: %v", err)
	}
	campaign := f.addCampaign(t, entities.CampaignActive, 1)
	f.addCreative(t, campaign.ID) // banner only

	got, err := f.svc.SelectAd(ctx, slot.ID, "")
	if err != nil {
		t.Fatalf("SelectAd failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected no ad for mismatched slot type, got %+v", got)
	}
}

func TestRecordImpressionAndClick(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	campaign := f.addCampaign(t, entities.CampaignActive, 1)
	creative := f.addCreative(t, campaign.ID)

	for i := 0; i < 3; i++ {
		if err := f.svc.RecordImpression(ctx, creative.ID); err != nil {
			t.Fatalf("RecordImpression failed: %v", err)
		}
	}
	if err := f.svc.RecordClick(ctx, creative.ID); err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}

	got, _ := f.creatives.Get(creative.ID)
	if got.Impressions != 3 || got.Clicks != 1 {
		t.Errorf("Expected 3 impressions and 1 click, got %d/%d", got.Impressions, got.Clicks)
	}

	if err := f.svc.RecordImpression(ctx, "missing"); err != constants.ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
