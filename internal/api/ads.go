package api

import (
	"encoding/json"
	"net/http"
	"time"

	"khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/common"
	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/dtos"
	"khola-chithi/engine/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

const adCatalogCacheKey = string(constants.CachePrefixAdCatalog) + "active"

// ServeAdHandler handles GET /public/ads/slots/{slot_id}
//
// Anonymous viewers are served public-only inventory. Subscribers get no
// ad at all, with a success response carrying empty data.
func ServeAdHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		viewerID := auth.ViewerID(r.Context())

		creative, err := deps.Services.Ads.SelectAd(r.Context(), chi.URLParam(r, "slot_id"), viewerID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to select ad", statusForError(err))
			return
		}
		if creative == nil {
			common.RespondSuccess(w, initTime, "No ad for this slot", nil)
			return
		}

		common.RespondSuccess(w, initTime, "Ad selected", dtos.ServedAd{
			CreativeID: creative.ID,
			CampaignID: creative.CampaignID,
			ImageURL:   creative.ImageURL,
			TargetURL:  creative.TargetURL,
		})
	}
}

// RecordImpressionHandler handles POST /public/ads/creatives/{creative_id}/impression
func RecordImpressionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := deps.Services.Ads.RecordImpression(r.Context(), chi.URLParam(r, "creative_id")); err != nil {
			common.RespondError(w, initTime, err, "Failed to record impression", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Impression recorded", nil)
	}
}

// RecordClickHandler handles POST /public/ads/creatives/{creative_id}/click
func RecordClickHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := deps.Services.Ads.RecordClick(r.Context(), chi.URLParam(r, "creative_id")); err != nil {
			common.RespondError(w, initTime, err, "Failed to record click", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Click recorded", nil)
	}
}

// ListAdCatalogHandler handles GET /api/v1/admin/ads/catalog (admin)
//
// The catalog is cached; every admin mutation below invalidates it.
func ListAdCatalogHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		catalog, err := deps.Services.Cache.GetOrSet(adCatalogCacheKey, 5*time.Minute, func() (any, error) {
			return map[string]any{
				"slots":     deps.Repo.AdSlots.All(),
				"campaigns": deps.Repo.AdCampaigns.All(),
				"creatives": deps.Repo.AdCreatives.All(),
			}, nil
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load catalog", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Ad catalog fetched", catalog)
	}
}

func (deps *Dependencies) invalidateAdCatalog() {
	deps.Services.Cache.Delete(adCatalogCacheKey)
}

// CreateAdSlotHandler handles POST /api/v1/admin/ads/slots (admin)
func CreateAdSlotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var slot entities.AdSlot
		if err := json.NewDecoder(r.Body).Decode(&slot); err != nil || slot.Name == "" {
			common.RespondError(w, initTime, err, "Invalid slot payload", http.StatusBadRequest)
			return
		}

		created, err := deps.Repo.AdSlots.Add(r.Context(), slot)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create slot", statusForError(err))
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Slot created", created, http.StatusCreated)
	}
}

// PatchAdSlotHandler handles PATCH /api/v1/admin/ads/slots/{slot_id} (admin)
func PatchAdSlotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.AdSlotPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		slot, found, err := deps.Repo.AdSlots.Mutate(r.Context(), chi.URLParam(r, "slot_id"), func(s *entities.AdSlot) {
			if patch.Name != nil {
				s.Name = *patch.Name
			}
			if patch.Type != nil {
				s.Type = *patch.Type
			}
			if patch.IsActive != nil {
				s.IsActive = *patch.IsActive
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update slot", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Slot not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Slot updated", slot)
	}
}

// DeleteAdSlotHandler handles DELETE /api/v1/admin/ads/slots/{slot_id} (admin)
func DeleteAdSlotHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		found, err := deps.Repo.AdSlots.Delete(r.Context(), chi.URLParam(r, "slot_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to delete slot", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Slot not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Slot deleted", nil)
	}
}

// CreateAdCampaignHandler handles POST /api/v1/admin/ads/campaigns (admin)
func CreateAdCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var campaign entities.AdCampaign
		if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil || campaign.Name == "" {
			common.RespondError(w, initTime, err, "Invalid campaign payload", http.StatusBadRequest)
			return
		}
		if campaign.Status == "" {
			campaign.Status = entities.CampaignScheduled
		}
		campaign.CreatedAt = time.Now()

		created, err := deps.Repo.AdCampaigns.Add(r.Context(), campaign)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create campaign", statusForError(err))
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Campaign created", created, http.StatusCreated)
	}
}

// PatchAdCampaignHandler handles PATCH /api/v1/admin/ads/campaigns/{campaign_id} (admin)
func PatchAdCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.AdCampaignPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		var parseErr error
		campaign, found, err := deps.Repo.AdCampaigns.Mutate(r.Context(), chi.URLParam(r, "campaign_id"), func(c *entities.AdCampaign) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Status != nil {
				c.Status = *patch.Status
			}
			if patch.Priority != nil {
				c.Priority = *patch.Priority
			}
			if patch.StartDate != nil {
				if *patch.StartDate == "" {
					c.StartDate = nil
				} else if t, err := time.Parse(time.RFC3339, *patch.StartDate); err == nil {
					c.StartDate = &t
				} else {
					parseErr = err
				}
			}
			if patch.EndDate != nil {
				if *patch.EndDate == "" {
					c.EndDate = nil
				} else if t, err := time.Parse(time.RFC3339, *patch.EndDate); err == nil {
					c.EndDate = &t
				} else {
					parseErr = err
				}
			}
		})
		if parseErr != nil {
			common.RespondError(w, initTime, parseErr, "Invalid date in patch", http.StatusBadRequest)
			return
		}
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update campaign", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Campaign not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Campaign updated", campaign)
	}
}

// DeleteAdCampaignHandler handles DELETE /api/v1/admin/ads/campaigns/{campaign_id} (admin)
//
// Creatives referencing the deleted campaign are left in place. Selection
// fails closed on the dangling reference.
func DeleteAdCampaignHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		found, err := deps.Repo.AdCampaigns.Delete(r.Context(), chi.URLParam(r, "campaign_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to delete campaign", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Campaign not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Campaign deleted", nil)
	}
}

// CreateAdCreativeHandler handles POST /api/v1/admin/ads/creatives (admin)
func CreateAdCreativeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var creative entities.AdCreative
		if err := json.NewDecoder(r.Body).Decode(&creative); err != nil || creative.CampaignID == "" {
			common.RespondError(w, initTime, err, "Invalid creative payload", http.StatusBadRequest)
			return
		}
		if creative.Status == "" {
			creative.Status = entities.CreativePaused
		}
		creative.Impressions = 0
		creative.Clicks = 0

		created, err := deps.Repo.AdCreatives.Add(r.Context(), creative)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create creative", statusForError(err))
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Creative created", created, http.StatusCreated)
	}
}

// PatchAdCreativeHandler handles PATCH /api/v1/admin/ads/creatives/{creative_id} (admin)
//
// Impressions and clicks are not patchable. They only move through the
// record endpoints.
func PatchAdCreativeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.AdCreativePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		creative, found, err := deps.Repo.AdCreatives.Mutate(r.Context(), chi.URLParam(r, "creative_id"), func(c *entities.AdCreative) {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.ImageURL != nil {
				c.ImageURL = *patch.ImageURL
			}
			if patch.TargetURL != nil {
				c.TargetURL = *patch.TargetURL
			}
			if patch.Status != nil {
				c.Status = *patch.Status
			}
			if patch.AllowedSlotTypes != nil {
				c.AllowedSlotTypes = *patch.AllowedSlotTypes
			}
			if patch.Audience != nil {
				c.Audience = *patch.Audience
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update creative", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Creative not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Creative updated", creative)
	}
}

// DeleteAdCreativeHandler handles DELETE /api/v1/admin/ads/creatives/{creative_id} (admin)
func DeleteAdCreativeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		found, err := deps.Repo.AdCreatives.Delete(r.Context(), chi.URLParam(r, "creative_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to delete creative", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Creative not found", http.StatusNotFound)
			return
		}

		deps.invalidateAdCatalog()
		common.RespondSuccess(w, initTime, "Creative deleted", nil)
	}
}

func (h *Handlers) ServeAd() http.HandlerFunc           { return ServeAdHandler(h.deps) }
func (h *Handlers) RecordImpression() http.HandlerFunc  { return RecordImpressionHandler(h.deps) }
func (h *Handlers) RecordClick() http.HandlerFunc       { return RecordClickHandler(h.deps) }
func (h *Handlers) ListAdCatalog() http.HandlerFunc     { return ListAdCatalogHandler(h.deps) }
func (h *Handlers) CreateAdSlot() http.HandlerFunc      { return CreateAdSlotHandler(h.deps) }
func (h *Handlers) PatchAdSlot() http.HandlerFunc       { return PatchAdSlotHandler(h.deps) }
func (h *Handlers) DeleteAdSlot() http.HandlerFunc      { return DeleteAdSlotHandler(h.deps) }
func (h *Handlers) CreateAdCampaign() http.HandlerFunc  { return CreateAdCampaignHandler(h.deps) }
func (h *Handlers) PatchAdCampaign() http.HandlerFunc   { return PatchAdCampaignHandler(h.deps) }
func (h *Handlers) DeleteAdCampaign() http.HandlerFunc  { return DeleteAdCampaignHandler(h.deps) }
func (h *Handlers) CreateAdCreative() http.HandlerFunc  { return CreateAdCreativeHandler(h.deps) }
func (h *Handlers) PatchAdCreative() http.HandlerFunc   { return PatchAdCreativeHandler(h.deps) }
func (h *Handlers) DeleteAdCreative() http.HandlerFunc  { return DeleteAdCreativeHandler(h.deps) }
