package utils

import "time"

// ExpiryFrom returns now+ttl truncated to microseconds, the precision Postgres keeps.
func ExpiryFrom(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl).Truncate(time.Microsecond)
}

// WindowStart 回傳往回推 window 的起點
func WindowStart(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}
