package models

import "time"

// CachedMedia is a downloaded demonstration file kept on disk.
type CachedMedia struct {
	Ref         string
	ContentType string
	Data        []byte
	FetchedAt   time.Time
}

// Expired reports whether the entry is older than ttl at now. A zero ttl never expires.
func (c CachedMedia) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(c.FetchedAt) > ttl
}
