package api

import (
	"context"
	"os"
	"time"

	"khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/common"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/services"
	"khola-chithi/engine/internal/store"
)

type Repositories struct {
	Users         *repositories.UserRepository
	Letters       *repositories.LetterRepository
	Posts         *repositories.PostRepository
	Memories      *repositories.MemoryRepository
	Gratitude     *repositories.GratitudeRepository
	Blogs         *repositories.BlogRepository
	AdSlots       *repositories.AdSlotRepository
	AdCampaigns   *repositories.AdCampaignRepository
	AdCreatives   *repositories.AdCreativeRepository
	Donors        *repositories.DonorRepository
	Payments      *repositories.PaymentMethodRepository
	Plans         *repositories.SubscriptionPlanRepository
	Revenue       *repositories.RevenueRepository
	Payouts       *repositories.ModeratorPayoutRepository
	Rewards       *repositories.UserRewardRepository
	Applications  *repositories.ModeratorApplicationRepository
	Badges        *repositories.BadgeRepository
	Resources     *repositories.ResourceRepository
	SupportGroups *repositories.SupportGroupRepository
	GroupPosts    *repositories.GroupPostRepository
	ChatSessions  *repositories.ChatSessionRepository
	Settings      *repositories.SettingsRepository
}

type Services struct {
	Cache        common.CacheInterface
	Session      *common.SessionService
	Tokens       *auth.TokenService
	APIKey       string // shared service key; empty disables X-API-Key auth
	Rules        *services.RulesService
	Letters      *services.LetterService
	Content      *services.ContentService
	Blogs        *services.BlogService
	Ads          *services.AdService
	Payouts      *services.PayoutService
	RateLimit    *services.RateLimitService
	Subscription *services.SubscriptionService
	Finance      *services.FinanceService
	Moderation   *services.ModerationService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(ctx context.Context, docs store.DocumentStore, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Users:         repositories.NewUserRepository(ctx, docs),
		Letters:       repositories.NewLetterRepository(ctx, docs),
		Posts:         repositories.NewPostRepository(ctx, docs),
		Memories:      repositories.NewMemoryRepository(ctx, docs),
		Gratitude:     repositories.NewGratitudeRepository(ctx, docs),
		Blogs:         repositories.NewBlogRepository(ctx, docs),
		AdSlots:       repositories.NewAdSlotRepository(ctx, docs),
		AdCampaigns:   repositories.NewAdCampaignRepository(ctx, docs),
		AdCreatives:   repositories.NewAdCreativeRepository(ctx, docs),
		Donors:        repositories.NewDonorRepository(ctx, docs),
		Payments:      repositories.NewPaymentMethodRepository(ctx, docs),
		Plans:         repositories.NewSubscriptionPlanRepository(ctx, docs),
		Revenue:       repositories.NewRevenueRepository(ctx, docs),
		Payouts:       repositories.NewModeratorPayoutRepository(ctx, docs),
		Rewards:       repositories.NewUserRewardRepository(ctx, docs),
		Applications:  repositories.NewModeratorApplicationRepository(ctx, docs),
		Badges:        repositories.NewBadgeRepository(ctx, docs),
		Resources:     repositories.NewResourceRepository(ctx, docs),
		SupportGroups: repositories.NewSupportGroupRepository(ctx, docs),
		GroupPosts:    repositories.NewGroupPostRepository(ctx, docs),
		ChatSessions:  repositories.NewChatSessionRepository(ctx, docs),
		Settings:      repositories.NewSettingsRepository(ctx, docs),
	}

	// In-memory cache by default; Redis when configured.
	var cacheSvc common.CacheInterface = common.NewCacheService(60000, 600)
	var sessionSvc *common.SessionService
	if os.Getenv("REDIS_HOST") != "" {
		redisClient := common.NewRedisClient()
		if redisClient != nil {
			cacheSvc = common.NewRedisCacheService(redisClient)
			sessionSvc = common.NewSessionService(redisClient)
			logging.Info("Using Redis cache backend")
		}
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		logging.Warn("TOKEN_SECRET not set, using development default")
	}
	tokenSvc := auth.NewTokenService([]byte(secret), 24*time.Hour)

	rulesSvc := services.NewRulesService(repos.Users, repos.Settings)

	svcs := &Services{
		Cache:        cacheSvc,
		Session:      sessionSvc,
		Tokens:       tokenSvc,
		APIKey:       os.Getenv("ENGINE_API_KEY"),
		Rules:        rulesSvc,
		Letters:      services.NewLetterService(repos.Letters, repos.Users, rulesSvc),
		Content:      services.NewContentService(repos.Posts, repos.Memories, repos.Gratitude, repos.Users, rulesSvc),
		Blogs:        services.NewBlogService(repos.Blogs, repos.Users, rulesSvc),
		Ads:          services.NewAdService(repos.AdSlots, repos.AdCampaigns, repos.AdCreatives, repos.Users, metricsReg),
		Payouts:      services.NewPayoutService(repos.Users, repos.Revenue, repos.Payouts, repos.Rewards, repos.Settings),
		RateLimit:    services.NewRateLimitService(repos.Letters),
		Subscription: services.NewSubscriptionService(repos.Users, repos.Plans, repos.Revenue),
		Finance:      services.NewFinanceService(repos.Donors, repos.Revenue),
		Moderation:   services.NewModerationService(repos.Users, repos.Applications, repos.Badges, repos.Settings),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
