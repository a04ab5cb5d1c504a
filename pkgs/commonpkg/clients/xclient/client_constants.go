package xclient

import "time"

// API Base Configuration
const (
	API_HOST = "https://api.twitter.com"
)

// Endpoint Constants
const (
	API_SEARCH_TWEETS = "/1.1/search/tweets.json"
)

// Response Path Constants
const (
	PATH_STATUSES = "statuses"
)

// Default Values
const (
	DEFAULT_PAGE_SIZE         = 100
	DEFAULT_MAX_POSTS         = 500
	DEFAULT_REPLY_SEARCH_SIZE = 100

	DEFAULT_REQUESTS_PER_SECOND = 1.0
	DEFAULT_BURST               = 5

	DEFAULT_RETRY_COUNT    = 5
	DEFAULT_RETRY_WAIT     = 2 * time.Second
	DEFAULT_RETRY_MAX_WAIT = 15 * time.Minute
	DEFAULT_TIMEOUT        = 30 * time.Second
)

// header keys
const (
	HEADER_RATE_LIMIT_RESET = "x-rate-limit-reset"
	HEADER_RETRY_AFTER      = "Retry-After"
)
