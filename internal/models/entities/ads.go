package entities

import "time"

type SlotType string

const (
	SlotBanner  SlotType = "banner"
	SlotSidebar SlotType = "sidebar"
	SlotInline  SlotType = "inline"
	SlotFooter  SlotType = "footer"
)

// AudienceTag scopes a creative to a class of viewers.
type AudienceTag string

const (
	AudienceAll        AudienceTag = "all"
	AudiencePublicOnly AudienceTag = "public_only"
	AudienceLoggedIn   AudienceTag = "logged_in_users"
	AudienceModerators AudienceTag = "moderators_only"
)

// AdSlot is a named UI placement.
type AdSlot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     SlotType `json:"type"`
	IsActive bool     `json:"isActive"`
}

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignPaused    CampaignStatus = "paused"
	CampaignEnded     CampaignStatus = "ended"
)

// AdCampaign is a scheduled, prioritized grouping of creatives. A nil
// start or end date leaves that bound open.
type AdCampaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	StartDate *time.Time     `json:"startDate,omitempty"`
	EndDate   *time.Time     `json:"endDate,omitempty"`
	Status    CampaignStatus `json:"status"`
	Priority  int            `json:"priority"`
	CreatedAt time.Time      `json:"createdAt"`
}

// InWindow reports whether t falls within the campaign's date window.
func (c *AdCampaign) InWindow(t time.Time) bool {
	if c.StartDate != nil && t.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.After(*c.EndDate) {
		return false
	}
	return true
}

type CreativeStatus string

const (
	CreativeActive CreativeStatus = "active"
	CreativePaused CreativeStatus = "paused"
)

// AdCreative is a renderable unit belonging to exactly one campaign.
// Impressions and Clicks are monotonic counters.
type AdCreative struct {
	ID               string         `json:"id"`
	CampaignID       string         `json:"campaignId"`
	Name             string         `json:"name"`
	ImageURL         string         `json:"imageUrl"`
	TargetURL        string         `json:"targetUrl"`
	Status           CreativeStatus `json:"status"`
	AllowedSlotTypes []SlotType     `json:"allowedSlotTypes,omitempty"`
	Audience         []AudienceTag  `json:"audience,omitempty"`
	Impressions      int64          `json:"impressions"`
	Clicks           int64          `json:"clicks"`
}

// AllowsSlotType reports whether the creative may render in slots of type t.
func (c *AdCreative) AllowsSlotType(t SlotType) bool {
	for _, st := range c.AllowedSlotTypes {
		if st == t {
			return true
		}
	}
	return false
}

// MatchesAudience reports whether the creative targets the resolved viewer
// tag. An empty audience set matches everyone.
func (c *AdCreative) MatchesAudience(tag AudienceTag) bool {
	if len(c.Audience) == 0 {
		return true
	}
	for _, a := range c.Audience {
		if a == AudienceAll || a == tag {
			return true
		}
	}
	return false
}
