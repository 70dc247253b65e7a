package routes

import (
	"khola-chithi/engine/internal/api"
	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	tokens := deps.Services.Tokens
	sessions := deps.Services.Session
	serviceKey := deps.Services.APIKey

	// Public routes with metrics. Ad serving resolves the viewer when
	// credentials are present but never requires them.
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Use(middleware.OptionalAuthMiddleware(tokens, sessions, serviceKey))
		public.Get("/public/ads/slots/{slot_id}", handlers.ServeAd())
		public.Post("/public/ads/creatives/{creative_id}/impression", handlers.RecordImpression())
		public.Post("/public/ads/creatives/{creative_id}/click", handlers.RecordClick())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))

		// Public
		v1.Post("/users/register", handlers.RegisterUser())
		v1.Post("/users/login", handlers.Login())
		v1.Post("/donations", handlers.RecordDonation())
		v1.Get("/plans", handlers.ListPlans())

		// Authenticated users group
		v1.Group(func(user chi.Router) {
			user.Use(middleware.AuthMiddleware(tokens, sessions, serviceKey))

			user.Get("/users/me", handlers.GetMe())
			user.Post("/users/logout", handlers.Logout())
			user.Post("/users/moderator-application", handlers.ApplyModerator())

			user.Post("/letters", handlers.SendLetter())
			user.Get("/letters", handlers.GetMyLetters())
			user.Get("/letters/quota", handlers.GetLetterQuota())
			user.Post("/letters/{letter_id}/rate", handlers.RateLetter())

			user.Get("/posts", handlers.ListPosts())
			user.Post("/posts", handlers.CreatePost())
			user.Post("/posts/{post_id}/like", handlers.ToggleLikePost())
			user.Post("/posts/{post_id}/report", handlers.ReportPost())

			user.Get("/memories", handlers.ListMemories())
			user.Post("/memories", handlers.CreateMemory())
			user.Post("/memories/{memory_id}/like", handlers.ToggleLikeMemory())

			user.Get("/gratitude", handlers.ListGratitude())
			user.Post("/gratitude", handlers.CreateGratitude())

			user.Get("/blogs", handlers.ListPublishedBlogs())
			user.Post("/blogs", handlers.SubmitBlog())
			user.Post("/blogs/{blog_id}/submit", handlers.SubmitDraft())
			user.Post("/blogs/{blog_id}/like", handlers.ToggleLikeBlog())
			user.Post("/blogs/{blog_id}/comments", handlers.CommentBlog())

			user.Post("/subscriptions", handlers.Subscribe())
			user.Delete("/subscriptions", handlers.CancelSubscription())
			user.Get("/rewards", handlers.GetMyRewards())
			user.Get("/payment-methods", handlers.ListPaymentMethods())

			user.Get("/badges", handlers.ListBadges())
			user.Get("/resources", handlers.ListResources())

			user.Get("/groups", handlers.ListSupportGroups())
			user.Post("/groups", handlers.CreateSupportGroup())
			user.Post("/groups/{group_id}/join", handlers.JoinSupportGroup())
			user.Delete("/groups/{group_id}", handlers.DeleteSupportGroup())
			user.Get("/groups/{group_id}/posts", handlers.ListGroupPosts())
			user.Post("/groups/{group_id}/posts", handlers.CreateGroupPost())

			user.Post("/chats", handlers.StartChatSession())
			user.Post("/chats/{chat_id}/messages", handlers.SendChatMessage())
			user.Post("/chats/{chat_id}/end", handlers.EndChatSession())

			// Moderator-only group
			user.Group(func(mod chi.Router) {
				mod.Use(middleware.IsModeratorMiddleware())

				mod.Get("/letters/pending", handlers.GetPendingLetters())
				mod.Get("/letters/assigned", handlers.GetAssignedLetters())
				mod.Post("/letters/{letter_id}/assign", handlers.AssignLetter())
				mod.Post("/letters/{letter_id}/reply", handlers.ReplyLetter())

				mod.Get("/posts/reported", handlers.ListReportedPosts())
				mod.Post("/posts/{post_id}/hide", handlers.HidePost())
				mod.Post("/posts/{post_id}/escalate", handlers.EscalatePost())

				mod.Get("/memories/pending", handlers.ListPendingMemories())
				mod.Post("/memories/{memory_id}/review", handlers.ReviewMemory())

				mod.Get("/blogs/pending", handlers.ListPendingBlogs())
				mod.Post("/blogs/{blog_id}/review", handlers.ReviewBlog())

				mod.Post("/resources", handlers.CreateResource())
				mod.Patch("/resources/{resource_id}", handlers.PatchResource())
				mod.Delete("/resources/{resource_id}", handlers.DeleteResource())

				mod.Post("/chats/{chat_id}/claim", handlers.ClaimChatSession())
				mod.Post("/admin/users/{user_id}/warn", handlers.WarnUser())

				// Admin-only group
				mod.Group(func(admin chi.Router) {
					admin.Use(middleware.IsAdminMiddleware())

					admin.Get("/admin/users", handlers.ListUsers())
					admin.Post("/admin/users/{user_id}/suspend", handlers.SuspendUser())
					admin.Post("/admin/users/{user_id}/badges/{badge_id}", handlers.AwardBadge())
					admin.Post("/admin/users/{user_id}/points", handlers.AdjustPoints())
					admin.Post("/admin/badges", handlers.CreateBadge())

					admin.Get("/admin/applications", handlers.ListPendingApplications())
					admin.Post("/admin/applications/{application_id}/review", handlers.ReviewApplication())

					admin.Get("/admin/settings", handlers.GetSettings())
					admin.Patch("/admin/settings", handlers.PatchSettings())

					admin.Get("/admin/revenue", handlers.ListRevenue())
					admin.Post("/admin/revenue", handlers.AddRevenue())
					admin.Post("/admin/payouts/run", handlers.RunModeratorPayouts())
					admin.Get("/admin/payouts", handlers.ListModeratorPayouts())
					admin.Post("/admin/payouts/{payout_id}/paid", handlers.MarkPayoutPaid())
					admin.Post("/admin/rewards/run", handlers.RunUserRewards())
					admin.Post("/admin/rewards/{reward_id}/paid", handlers.MarkRewardPaid())

					admin.Post("/admin/plans", handlers.CreatePlan())
					admin.Patch("/admin/plans/{plan_id}", handlers.PatchPlan())
					admin.Post("/admin/payment-methods", handlers.CreatePaymentMethod())
					admin.Patch("/admin/payment-methods/{method_id}", handlers.PatchPaymentMethod())
					admin.Delete("/admin/payment-methods/{method_id}", handlers.DeletePaymentMethod())

					admin.Get("/admin/ads/catalog", handlers.ListAdCatalog())
					admin.Post("/admin/ads/slots", handlers.CreateAdSlot())
					admin.Patch("/admin/ads/slots/{slot_id}", handlers.PatchAdSlot())
					admin.Delete("/admin/ads/slots/{slot_id}", handlers.DeleteAdSlot())
					admin.Post("/admin/ads/campaigns", handlers.CreateAdCampaign())
					admin.Patch("/admin/ads/campaigns/{campaign_id}", handlers.PatchAdCampaign())
					admin.Delete("/admin/ads/campaigns/{campaign_id}", handlers.DeleteAdCampaign())
					admin.Post("/admin/ads/creatives", handlers.CreateAdCreative())
					admin.Patch("/admin/ads/creatives/{creative_id}", handlers.PatchAdCreative())
					admin.Delete("/admin/ads/creatives/{creative_id}", handlers.DeleteAdCreative())
				})
			})
		})
	})
}
