package services

import (
	"context"
	"sort"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/models/entities"
)

// AdService selects at most one eligible creative for a slot and viewer.
// Selection is deterministic: candidates are stable-sorted by campaign
// priority descending and the first one wins.
type AdService struct {
	slots     *repositories.AdSlotRepository
	campaigns *repositories.AdCampaignRepository
	creatives *repositories.AdCreativeRepository
	users     *repositories.UserRepository
	metrics   *metrics.MetricsRegistry
	now       func() time.Time
}

func NewAdService(
	slots *repositories.AdSlotRepository,
	campaigns *repositories.AdCampaignRepository,
	creatives *repositories.AdCreativeRepository,
	users *repositories.UserRepository,
	metricsReg *metrics.MetricsRegistry,
) *AdService {
	return &AdService{
		slots:     slots,
		campaigns: campaigns,
		creatives: creatives,
		users:     users,
		metrics:   metricsReg,
		now:       time.Now,
	}
}

// resolveAudience maps the viewer to an audience tag. An unknown viewer id
// is treated the same as no viewer.
func (s *AdService) resolveAudience(viewerID string) (entities.AudienceTag, *entities.User) {
	if viewerID == "" {
		return entities.AudiencePublicOnly, nil
	}
	viewer, ok := s.users.Get(viewerID)
	if !ok {
		return entities.AudiencePublicOnly, nil
	}
	if viewer.Role == constants.RoleModerator {
		return entities.AudienceModerators, &viewer
	}
	return entities.AudienceLoggedIn, &viewer
}

// SelectAd returns the winning creative for the slot, or nil when no ad
// should be shown. Dangling campaign references fail closed.
func (s *AdService) SelectAd(ctx context.Context, slotID, viewerID string) (*entities.AdCreative, error) {
	// Premium exemption comes before any other logic.
	tag, viewer := s.resolveAudience(viewerID)
	if viewer != nil && viewer.IsSubscriber() {
		return nil, nil
	}

	slot, ok := s.slots.Get(slotID)
	if !ok || !slot.IsActive {
		return nil, nil
	}

	now := s.now()
	var candidates []entities.AdCreative
	for _, creative := range s.creatives.All() {
		if creative.Status != entities.CreativeActive {
			continue
		}
		campaign, ok := s.campaigns.Get(creative.CampaignID)
		if !ok {
			continue
		}
		if campaign.Status != entities.CampaignActive && campaign.Status != entities.CampaignScheduled {
			continue
		}
		if !campaign.InWindow(now) {
			continue
		}
		if !creative.AllowsSlotType(slot.Type) {
			continue
		}
		if !creative.MatchesAudience(tag) {
			continue
		}
		candidates = append(candidates, creative)
	}

	if len(candidates) == 0 {
		if s.metrics != nil {
			s.metrics.AdRequestsUnfilled.Inc()
		}
		return nil, nil
	}

	// Priority descending, stable on original order for ties. No rotation
	// among equal priorities.
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, _ := s.campaigns.Get(candidates[i].CampaignID)
		cj, _ := s.campaigns.Get(candidates[j].CampaignID)
		return ci.Priority > cj.Priority
	})

	if s.metrics != nil {
		s.metrics.AdsServedTotal.Inc()
	}
	winner := candidates[0]
	return &winner, nil
}

// RecordImpression increments the creative's monotonic impression counter.
func (s *AdService) RecordImpression(ctx context.Context, creativeID string) error {
	_, found, err := s.creatives.Mutate(ctx, creativeID, func(c *entities.AdCreative) {
		c.Impressions++
	})
	if err != nil {
		return err
	}
	if !found {
		return constants.ErrNotFound
	}
	if s.metrics != nil {
		s.metrics.AdImpressionsTotal.Inc()
	}
	return nil
}

// RecordClick increments the creative's monotonic click counter.
func (s *AdService) RecordClick(ctx context.Context, creativeID string) error {
	_, found, err := s.creatives.Mutate(ctx, creativeID, func(c *entities.AdCreative) {
		c.Clicks++
	})
	if err != nil {
		return err
	}
	if !found {
		return constants.ErrNotFound
	}
	if s.metrics != nil {
		s.metrics.AdClicksTotal.Inc()
	}
	return nil
}
