package repositories

import (
	"context"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type AdSlotRepository struct {
	*Collection[entities.AdSlot]
}

func NewAdSlotRepository(ctx context.Context, s store.DocumentStore) *AdSlotRepository {
	return &AdSlotRepository{
		Collection: NewCollection(ctx, s, constants.ColAdSlots, []entities.AdSlot{},
			func(a *entities.AdSlot) string { return a.ID },
			func(a *entities.AdSlot, id string) { a.ID = id },
		),
	}
}

type AdCampaignRepository struct {
	*Collection[entities.AdCampaign]
}

func NewAdCampaignRepository(ctx context.Context, s store.DocumentStore) *AdCampaignRepository {
	return &AdCampaignRepository{
		Collection: NewCollection(ctx, s, constants.ColAdCampaigns, []entities.AdCampaign{},
			func(a *entities.AdCampaign) string { return a.ID },
			func(a *entities.AdCampaign, id string) { a.ID = id },
		),
	}
}

type AdCreativeRepository struct {
	*Collection[entities.AdCreative]
}

func NewAdCreativeRepository(ctx context.Context, s store.DocumentStore) *AdCreativeRepository {
	return &AdCreativeRepository{
		Collection: NewCollection(ctx, s, constants.ColAdCreatives, []entities.AdCreative{},
			func(a *entities.AdCreative) string { return a.ID },
			func(a *entities.AdCreative, id string) { a.ID = id },
		),
	}
}

// ByCampaign returns all creatives belonging to the campaign.
func (r *AdCreativeRepository) ByCampaign(campaignID string) []entities.AdCreative {
	return r.Filter(func(c *entities.AdCreative) bool { return c.CampaignID == campaignID })
}
