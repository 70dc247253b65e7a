package entities

import (
	"time"

	"khola-chithi/engine/internal/constants"
)

// PointAward is one immutable entry in a moderator's monthly detail log.
type PointAward struct {
	Type   constants.PointEvent `json:"type"`
	Points int                  `json:"points"`
	Date   time.Time            `json:"date"`
}

// MonthlyPerformance is a moderator's performance bucket for one calendar
// month, keyed YYYY-MM. Log entries are appended before the total moves.
type MonthlyPerformance struct {
	Month  string       `json:"month"`
	Points int          `json:"points"`
	Log    []PointAward `json:"log"`
}

type Warning struct {
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

type User struct {
	ID                 string               `json:"id"`
	Email              string               `json:"email"`
	Username           string               `json:"username"`
	Role               constants.Role       `json:"role"`
	EngagementPoints   int                  `json:"engagementPoints"`
	PerformancePoints  []MonthlyPerformance `json:"performancePoints,omitempty"`
	SubscriptionStatus string               `json:"subscriptionStatus"`
	LastLetterSentDate *time.Time           `json:"lastLetterSentDate,omitempty"`
	LastMemoryPostDate *time.Time           `json:"lastMemoryPostDate,omitempty"`
	SuspendedUntil     *time.Time           `json:"suspendedUntil,omitempty"`
	Warnings           []Warning            `json:"warnings,omitempty"`
	AwardedBadges      []string             `json:"awardedBadges,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// PerformanceBucket returns the performance entry for a month, creating it
// on first use.
func (u *User) PerformanceBucket(month string) *MonthlyPerformance {
	for i := range u.PerformancePoints {
		if u.PerformancePoints[i].Month == month {
			return &u.PerformancePoints[i]
		}
	}
	u.PerformancePoints = append(u.PerformancePoints, MonthlyPerformance{Month: month})
	return &u.PerformancePoints[len(u.PerformancePoints)-1]
}

// PerformanceFor returns the month's point total and whether a bucket exists.
func (u *User) PerformanceFor(month string) (int, bool) {
	for i := range u.PerformancePoints {
		if u.PerformancePoints[i].Month == month {
			return u.PerformancePoints[i].Points, true
		}
	}
	return 0, false
}

// IsSuspended reports whether the user is suspended at the given instant.
func (u *User) IsSuspended(now time.Time) bool {
	return u.SuspendedUntil != nil && now.Before(*u.SuspendedUntil)
}

// IsSubscriber reports whether the user holds any active subscription.
func (u *User) IsSubscriber() bool {
	return u.SubscriptionStatus != "" && u.SubscriptionStatus != constants.SubscriptionNone
}
