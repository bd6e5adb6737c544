package models

import "time"

// UsageRecord tracks per-device request consumption.
// Stored as JSON at key "usage:{deviceId}".
//
// Total is denormalized: it equals the free allotment plus the sum of all
// purchased amounts, but it is maintained explicitly by every mutating
// handler rather than derived on read. Restore recomputes it from the
// purchase ledger when the two drift apart.
type UsageRecord struct {
	Used      int    `json:"used"`      // requests consumed
	Total     int    `json:"total"`     // cumulative quota (free + purchased)
	LastReset string `json:"lastReset"` // ISO-8601, informational only
}

// NewUsageRecord returns a fresh record with the given free allotment.
func NewUsageRecord(freeRequests int) *UsageRecord {
	return &UsageRecord{
		Used:      0,
		Total:     freeRequests,
		LastReset: time.Now().UTC().Format(time.RFC3339),
	}
}

// Remaining returns the unconsumed portion of the quota, never negative.
func (u *UsageRecord) Remaining() int {
	if u.Used >= u.Total {
		return 0
	}
	return u.Total - u.Used
}
