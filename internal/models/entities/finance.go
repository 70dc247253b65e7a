package entities

import "time"

type Donor struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Amount  float64   `json:"amount"`
	Message string    `json:"message,omitempty"`
	Date    time.Time `json:"date"`
}

type PaymentMethod struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Details  string `json:"details"`
	IsActive bool   `json:"isActive"`
}

type SubscriptionPlan struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	PriceMonthly float64  `json:"priceMonthly"`
	Perks        []string `json:"perks,omitempty"`
	IsActive     bool     `json:"isActive"`
}

// RevenueData holds one calendar month's recorded revenue, keyed YYYY-MM.
type RevenueData struct {
	ID                   string  `json:"id"`
	Month                string  `json:"month"`
	AdsRevenue           float64 `json:"adsRevenue"`
	DonationsRevenue     float64 `json:"donationsRevenue"`
	SubscriptionsRevenue float64 `json:"subscriptionsRevenue"`
}

// Total is the month's combined revenue across all sources.
func (r *RevenueData) Total() float64 {
	return r.AdsRevenue + r.DonationsRevenue + r.SubscriptionsRevenue
}

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

// ModeratorPayout is a derived, regenerable row for one moderator and month.
type ModeratorPayout struct {
	ID          string       `json:"id"`
	Month       string       `json:"month"`
	ModeratorID string       `json:"moderatorId"`
	Points      int          `json:"points"`
	Amount      float64      `json:"amount"`
	Status      PayoutStatus `json:"status"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// UserReward is a derived, regenerable row for one user and half-year.
type UserReward struct {
	ID          string       `json:"id"`
	Year        int          `json:"year"`
	Half        string       `json:"half"`
	UserID      string       `json:"userId"`
	Points      int          `json:"points"`
	Amount      float64      `json:"amount"`
	Status      PayoutStatus `json:"status"`
	GeneratedAt time.Time    `json:"generatedAt"`
}
