package risk

import (
	"context"
	"fmt"
	"time"
)

// countToday atomically increments and returns the user's transaction
// count for the current UTC calendar day. The key expires at the next
// day boundary, so counters reset daily without cleanup jobs. Called
// exactly once per assessment; the returned count includes this
// transaction's own increment.
func (s *service) countToday(ctx context.Context, userID string, at time.Time) (int64, error) {
	day := at.UTC()
	key := fmt.Sprintf("%s%s:%s", velocityKeyPrefix, userID, day.Format("2006-01-02"))

	midnight := day.Truncate(24 * time.Hour).Add(24 * time.Hour)
	ttl := midnight.Sub(day)

	ctx, cancel := context.WithTimeout(ctx, s.config.ExternalCallTimeout)
	defer cancel()

	return s.counters.IncrementAndGet(ctx, key, ttl)
}
