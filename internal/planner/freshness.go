package planner

import (
	"time"

	"github.com/mmcdole/malplan/internal/domain"
)

// MaxCacheAge is how long a snapshot may be reused before the list is fetched again
const MaxCacheAge = 72 * time.Hour

// IsFresh reports whether snapshot can stand in for a fetch by user at now.
// A snapshot from the future (clock skew) is never fresh.
func IsFresh(snapshot domain.CacheSnapshot, user string, now time.Time) bool {
	if snapshot.User != user {
		return false
	}
	age := snapshot.FetchedAt.Since(now)
	return age >= 0 && age <= MaxCacheAge
}
