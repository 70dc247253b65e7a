package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSettings  CachePrefix = "SETTINGS_"
	CachePrefixAdCatalog CachePrefix = "AD_CATALOG_"
	CachePrefixSession   CachePrefix = "SESSION_"
)

// Submission limits enforced by the calling layer; the engine's rate
// limiter only reports counts.
const (
	LetterWindow    = 24 * time.Hour
	LetterWindowCap = 2
	MemoryCooldown  = 7 * 24 * time.Hour
)

// FastReplyLatency is the inclusive upper bound for the fast-reply bonus.
const FastReplyLatency = 24 * time.Hour

// SubscriptionNone is the subscription status of a non-subscriber.
const SubscriptionNone = "none"
