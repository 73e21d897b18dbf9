package aggregate

import "time"

// Status is the freshness classification of a batch or product.
type Status string

const (
	StatusExpired      Status = "expired"
	StatusExpiringSoon Status = "expiring_soon"
	StatusFresh        Status = "fresh"
)

// ExpiringSoonDays is the fixed policy window: anything with 0 to 7 days
// remaining counts as "a punto de caducar".
const ExpiringSoonDays = 7

// DaysUntil returns the day difference between target and now, truncated
// toward zero. 23 hours away is 0 days; 25 hours ago is -1 day.
func DaysUntil(target, now time.Time) int {
	return int(target.Sub(now).Hours() / 24)
}

// Classify partitions every expiry date into exactly one status relative
// to now.
func Classify(expiry, now time.Time) Status {
	days := DaysUntil(expiry, now)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringSoonDays:
		return StatusExpiringSoon
	default:
		return StatusFresh
	}
}
