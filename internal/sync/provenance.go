package sync

import "time"

// CacheReason records why a resource was served from cache instead of the
// API.
type CacheReason string

const (
	// ReasonCacheOnly: the cycle never intended to call the API.
	ReasonCacheOnly CacheReason = "cache-only"
	// ReasonQuota: the cycle wanted the API but the daily budget was spent.
	ReasonQuota CacheReason = "quota"
	// ReasonAPIError: the API call failed and cache covered for it.
	ReasonAPIError CacheReason = "api-error"
)

// Provenance describes where one resource's data came from.
type Provenance struct {
	FromCache bool
	Reason    CacheReason
	FetchedAt time.Time // when the data was originally fetched; zero if unknown
	Err       error     // remote error that forced the fallback, if any
}

func apiProvenance(now time.Time) Provenance {
	return Provenance{FetchedAt: now}
}
