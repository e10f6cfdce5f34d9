package constants

import "time"

// 限流分组，各组计数互不影响
const (
	RateLimitGroupEvents  = "events"
	RateLimitGroupNotices = "notices"
	RateLimitGroupQueries = "queries"
)

const (
	RateLimitWindow     = 10 * time.Minute
	RateLimitMaxEvents  = 20
	RateLimitMaxNotices = 30
	RateLimitMaxQueries = 20
)

const (
	CacheKeyRateLimit = "college:ratelimit:%s:%s:%d" // group, client, window
)

const RateLimitMessage = "Too many requests, please try again later."
