package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Centralizes all Redis cache keys and TTL values for the Seatwise application
// Pattern: seatwise:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour // 2 hours - for event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour // 1 hour - for event listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_SHORT = 5 * time.Minute // 5 minutes - for seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "seatwise"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== SEATS MODULE ==================

// Seat Cache Keys
const (
	CACHE_KEY_EVENT_SEATS = CACHE_PREFIX + ":seats:event:uuid:" // + event-id
)

// Seat Cache TTLs
const (
	TTL_EVENT_SEATS = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with cache.Service.DeletePattern)
const (
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventSeatsKey(eventID string) string {
	return CACHE_KEY_EVENT_SEATS + eventID
}

func BuildEventListKey(page, limit int) string {
	return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}
