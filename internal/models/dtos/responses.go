package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// PayoutReport is the result of one moderator payout computation.
type PayoutReport struct {
	Month        string  `json:"month"`
	Pool         float64 `json:"pool"`
	TotalPoints  int     `json:"total_points"`
	Participants int     `json:"participants"`
}

// RewardReport is the result of one user reward computation.
type RewardReport struct {
	Year         int     `json:"year"`
	Half         string  `json:"half"`
	Pool         float64 `json:"pool"`
	TotalPoints  int     `json:"total_points"`
	Participants int     `json:"participants"`
}

// ServedAd is what the presentation layer renders for a filled slot.
type ServedAd struct {
	CreativeID string `json:"creative_id"`
	CampaignID string `json:"campaign_id"`
	ImageURL   string `json:"image_url"`
	TargetURL  string `json:"target_url"`
}

// QuotaStatus reports the advisory letter rate-limit state for a user.
type QuotaStatus struct {
	SentInWindow int       `json:"sent_in_window"`
	Cap          int       `json:"cap"`
	WindowEnds   time.Time `json:"window_ends"`
}
