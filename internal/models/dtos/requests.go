package dtos

type RegisterUserReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type SendLetterReq struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type ReplyLetterReq struct {
	Reply string `json:"reply"`
}

type RateLetterReq struct {
	Rating int `json:"rating"`
}

type CreatePostReq struct {
	Body string `json:"body"`
}

type CreateMemoryReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SubmitBlogReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Draft bool   `json:"draft"`
}

type BlogCommentReq struct {
	Body string `json:"body"`
}

type SubscribeReq struct {
	PlanID string `json:"plan_id"`
}

type DonationReq struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

type RevenueReq struct {
	Month         string  `json:"month"`
	Ads           float64 `json:"ads"`
	Donations     float64 `json:"donations"`
	Subscriptions float64 `json:"subscriptions"`
}

type PayoutRunReq struct {
	Month string `json:"month"`
}

type RewardRunReq struct {
	Year int    `json:"year"`
	Half string `json:"half"`
}

type WarnUserReq struct {
	Reason string `json:"reason"`
}

type SuspendUserReq struct {
	Until string `json:"until"` // RFC 3339
}

type AdjustPointsReq struct {
	EngagementPoints int `json:"engagement_points"`
}

type ApplyModeratorReq struct {
	Statement string `json:"statement"`
}
