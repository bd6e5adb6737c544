package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/store"
)

// UsageLedger tracks and gates consumption of a per-device request quota.
//
// Every operation is a read-then-write pair over the single key
// "usage:{deviceId}" with no lock and no compare-and-swap: two overlapping
// TryConsume calls for the same device can both observe used=N and both
// write used=N+1, under-counting by one. This lost-update race is an
// accepted limitation of the store model, documented in DESIGN.md.
type UsageLedger struct {
	store        store.Store
	freeRequests int
}

// NewUsageLedger creates a usage ledger with the given free allotment.
func NewUsageLedger(s store.Store, freeRequests int) *UsageLedger {
	return &UsageLedger{store: s, freeRequests: freeRequests}
}

// FreeRequests returns the free allotment granted to every new device.
func (l *UsageLedger) FreeRequests() int {
	return l.freeRequests
}

// ConsumeResult is the outcome of a TryConsume call.
type ConsumeResult struct {
	Allowed   bool
	Used      int
	Total     int
	Remaining int
}

func usageKey(deviceID string) string {
	return fmt.Sprintf("usage:%s", deviceID)
}

// Get reads the usage record for a device. ok is false when no record
// exists; nothing is written.
func (l *UsageLedger) Get(ctx context.Context, deviceID string) (*models.UsageRecord, bool, error) {
	value, ok, err := l.store.Get(ctx, usageKey(deviceID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read usage record: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var record models.UsageRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, false, fmt.Errorf("failed to parse usage record: %w", err)
	}
	return &record, true, nil
}

// GetOrInit reads the usage record for a device, creating and persisting
// the default record on first contact.
func (l *UsageLedger) GetOrInit(ctx context.Context, deviceID string) (*models.UsageRecord, error) {
	record, ok, err := l.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if ok {
		return record, nil
	}

	record = models.NewUsageRecord(l.freeRequests)
	if err := l.put(ctx, deviceID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// TryConsume consumes one request from the device's quota if any remains.
// An exhausted quota is a pure read: the denial performs no write, so
// repeated denied calls never mutate the record.
func (l *UsageLedger) TryConsume(ctx context.Context, deviceID string) (*ConsumeResult, error) {
	record, err := l.GetOrInit(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if record.Used >= record.Total {
		return &ConsumeResult{
			Allowed:   false,
			Used:      record.Used,
			Total:     record.Total,
			Remaining: 0,
		}, nil
	}

	record.Used++
	if err := l.put(ctx, deviceID, record); err != nil {
		return nil, err
	}

	return &ConsumeResult{
		Allowed:   true,
		Used:      record.Used,
		Total:     record.Total,
		Remaining: record.Total - record.Used,
	}, nil
}

// AddToTotal grants delta additional quota units on top of the stored
// total. This is the incremental path used by purchase verification; it
// trusts the stored total rather than recomputing from the purchase
// ledger (see DESIGN.md for the drift discussion).
func (l *UsageLedger) AddToTotal(ctx context.Context, deviceID string, delta int) (*models.UsageRecord, error) {
	record, err := l.GetOrInit(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	record.Total += delta
	if err := l.put(ctx, deviceID, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RecomputeTotal overwrites the stored total with free allotment plus the
// given purchased sum, preserving used and lastReset. This is the
// self-healing path used by restore: the total is re-derived from the
// append-only purchase ledger regardless of what is currently stored.
func (l *UsageLedger) RecomputeTotal(ctx context.Context, deviceID string, purchasedSum int) (*models.UsageRecord, error) {
	record, ok, err := l.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		record = &models.UsageRecord{
			Used:      0,
			LastReset: time.Now().UTC().Format(time.RFC3339),
		}
	}

	record.Total = l.freeRequests + purchasedSum
	if err := l.put(ctx, deviceID, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (l *UsageLedger) put(ctx context.Context, deviceID string, record *models.UsageRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode usage record: %w", err)
	}
	if err := l.store.Set(ctx, usageKey(deviceID), string(value)); err != nil {
		return fmt.Errorf("failed to write usage record: %w", err)
	}
	return nil
}
