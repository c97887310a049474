package defaults

import "time"

// Menu source client.
const (
	// HTTPClientTimeout bounds a single call to the menu source.
	HTTPClientTimeout = 10 * time.Second

	// FetchTimeout bounds loading every configured restaurant for one report.
	FetchTimeout = 30 * time.Second

	// SourceRateLimit is the steady number of requests per second sent to the menu source.
	SourceRateLimit = 8

	// SourceRateBurst is the burst allowed above SourceRateLimit.
	SourceRateBurst = 8

	// MaxReplyBytes caps the size of a menu source reply.
	MaxReplyBytes = 1 << 20

	// FetchConcurrency is the number of restaurants fetched in parallel.
	FetchConcurrency = 4
)

// Caching.
const (
	// MenuCacheTTL is how long fetched menus are reused, in memory and on disk.
	MenuCacheTTL = 6 * time.Hour

	// NegativeCacheTTL is how long a failed fetch is remembered before retrying.
	NegativeCacheTTL = time.Minute
)

// Restaurant ids accepted by the menu source.
const (
	MinRestaurantID = 1
	MaxRestaurantID = 100
)

// HTTP server.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second

	// MenuHandlerTimeout bounds a /v1/menus request, including upstream fetches.
	MenuHandlerTimeout = 45 * time.Second
)
