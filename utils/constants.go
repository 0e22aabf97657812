// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AnalyticsCachePrefix is the prefix used for cached per-user analytics snapshots.
const AnalyticsCachePrefix = "analytics:"
