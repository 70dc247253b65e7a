package dtos

import (
	"khola-chithi/engine/internal/models/entities"
)

// Sparse patch structs for entity updates. Nil fields are left untouched.

type AdSlotPatch struct {
	Name     *string            `json:"name,omitempty"`
	Type     *entities.SlotType `json:"type,omitempty"`
	IsActive *bool              `json:"is_active,omitempty"`
}

type AdCampaignPatch struct {
	Name      *string                  `json:"name,omitempty"`
	StartDate *string                  `json:"start_date,omitempty"` // RFC 3339
	EndDate   *string                  `json:"end_date,omitempty"`
	Status    *entities.CampaignStatus `json:"status,omitempty"`
	Priority  *int                     `json:"priority,omitempty"`
}

type AdCreativePatch struct {
	Name             *string                  `json:"name,omitempty"`
	ImageURL         *string                  `json:"image_url,omitempty"`
	TargetURL        *string                  `json:"target_url,omitempty"`
	Status           *entities.CreativeStatus `json:"status,omitempty"`
	AllowedSlotTypes *[]entities.SlotType     `json:"allowed_slot_types,omitempty"`
	Audience         *[]entities.AudienceTag  `json:"audience,omitempty"`
}

type SubscriptionPlanPatch struct {
	Name         *string   `json:"name,omitempty"`
	PriceMonthly *float64  `json:"price_monthly,omitempty"`
	Perks        *[]string `json:"perks,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

type ResourcePatch struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Category *string `json:"category,omitempty"`
}

type PaymentMethodPatch struct {
	Name     *string `json:"name,omitempty"`
	Details  *string `json:"details,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type SettingsPatch struct {
	Points               *entities.PointValues  `json:"points,omitempty"`
	ModeratorShareRatio  *float64               `json:"moderator_share_ratio,omitempty"`
	UserShareRatio       *float64               `json:"user_share_ratio,omitempty"`
	ModeratorEmailDomain *string                `json:"moderator_email_domain,omitempty"`
	Announcement         *entities.Announcement `json:"announcement,omitempty"`
}
