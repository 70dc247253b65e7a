package constants

// Stable document keys for persisted collections. Each key addresses one
// full-collection JSON record in the document store.
const (
	ColUsers                 = "users"
	ColLetters               = "letters"
	ColPosts                 = "posts"
	ColBlogs                 = "blogs"
	ColDonors                = "donors"
	ColPaymentMethods        = "payment_methods"
	ColModeratorApplications = "moderator_applications"
	ColBadges                = "badges"
	ColResources             = "resources"
	ColGratitudeEntries      = "gratitude_entries"
	ColMemories              = "memories"
	ColSupportGroups         = "support_groups"
	ColGroupPosts            = "group_posts"
	ColChatSessions          = "chat_sessions"
	ColAdSlots               = "ad_slots"
	ColAdCreatives           = "ad_creatives"
	ColAdCampaigns           = "ad_campaigns"
	ColSubscriptionPlans     = "subscription_plans"
	ColRevenueData           = "revenue_data"
	ColModeratorPayouts      = "moderator_payouts"
	ColUserRewards           = "user_rewards"

	// KeyPlatformSettings addresses the singleton settings object record.
	KeyPlatformSettings = "platform_settings"
)
