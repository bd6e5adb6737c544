package ledger

import (
	"context"
	"encoding/json"
	"testing"

	"recipe-quota-api/internal/models"
	"recipe-quota-api/internal/store"
)

func TestGetOrInitCreatesDefaultRecord(t *testing.T) {
	kv := store.NewMemoryStore()
	l := NewUsageLedger(kv, 10)
	ctx := context.Background()

	record, err := l.GetOrInit(ctx, "dev-1")
	if err != nil {
		t.Fatalf("GetOrInit failed: %v", err)
	}
	if record.Used != 0 || record.Total != 10 {
		t.Fatalf("expected used=0 total=10, got used=%d total=%d", record.Used, record.Total)
	}
	if record.LastReset == "" {
		t.Fatal("expected lastReset to be set")
	}

	// The default record must be persisted, not just returned.
	value, ok, _ := kv.Get(ctx, "usage:dev-1")
	if !ok {
		t.Fatal("default record not persisted")
	}
	var stored models.UsageRecord
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		t.Fatalf("persisted record is not valid JSON: %v", err)
	}
	if stored.Total != 10 {
		t.Fatalf("persisted total = %d, want 10", stored.Total)
	}
}

func TestTryConsumeCountsDownAndDenies(t *testing.T) {
	l := NewUsageLedger(store.NewMemoryStore(), 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		result, err := l.TryConsume(ctx, "dev-1")
		if err != nil {
			t.Fatalf("TryConsume %d failed: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("call %d: expected allowed", i)
		}
		if result.Used != i {
			t.Fatalf("call %d: used = %d, want %d", i, result.Used, i)
		}
		if result.Remaining != 3-i {
			t.Fatalf("call %d: remaining = %d, want %d", i, result.Remaining, 3-i)
		}
	}

	// Exhausted: denied, used unchanged, repeatedly.
	for i := 0; i < 2; i++ {
		result, err := l.TryConsume(ctx, "dev-1")
		if err != nil {
			t.Fatalf("TryConsume after exhaustion failed: %v", err)
		}
		if result.Allowed {
			t.Fatal("expected denial after quota exhaustion")
		}
		if result.Used != 3 || result.Remaining != 0 {
			t.Fatalf("denial state: used=%d remaining=%d, want used=3 remaining=0", result.Used, result.Remaining)
		}
	}
}

func TestTryConsumeDenialDoesNotWrite(t *testing.T) {
	kv := store.NewMemoryStore()
	l := NewUsageLedger(kv, 1)
	ctx := context.Background()

	if _, err := l.TryConsume(ctx, "dev-1"); err != nil {
		t.Fatalf("TryConsume failed: %v", err)
	}

	before, _, _ := kv.Get(ctx, "usage:dev-1")
	if _, err := l.TryConsume(ctx, "dev-1"); err != nil {
		t.Fatalf("TryConsume failed: %v", err)
	}
	after, _, _ := kv.Get(ctx, "usage:dev-1")

	if before != after {
		t.Fatalf("denied consume mutated the record: %s -> %s", before, after)
	}
}

func TestAddToTotal(t *testing.T) {
	l := NewUsageLedger(store.NewMemoryStore(), 10)
	ctx := context.Background()

	// Works on a device with no prior record: defaults then adds.
	record, err := l.AddToTotal(ctx, "dev-1", 50)
	if err != nil {
		t.Fatalf("AddToTotal failed: %v", err)
	}
	if record.Total != 60 {
		t.Fatalf("total = %d, want 60", record.Total)
	}
	if record.Used != 0 {
		t.Fatalf("used = %d, want 0", record.Used)
	}

	record, err = l.AddToTotal(ctx, "dev-1", 100)
	if err != nil {
		t.Fatalf("AddToTotal failed: %v", err)
	}
	if record.Total != 160 {
		t.Fatalf("total = %d, want 160", record.Total)
	}
}

func TestRecomputeTotalPreservesUsed(t *testing.T) {
	l := NewUsageLedger(store.NewMemoryStore(), 10)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := l.TryConsume(ctx, "dev-1"); err != nil {
			t.Fatalf("TryConsume failed: %v", err)
		}
	}

	record, err := l.RecomputeTotal(ctx, "dev-1", 150)
	if err != nil {
		t.Fatalf("RecomputeTotal failed: %v", err)
	}
	if record.Total != 160 {
		t.Fatalf("total = %d, want 160", record.Total)
	}
	if record.Used != 4 {
		t.Fatalf("used = %d, want 4 (must be preserved)", record.Used)
	}
}

func TestRecomputeTotalOnMissingRecord(t *testing.T) {
	l := NewUsageLedger(store.NewMemoryStore(), 10)

	record, err := l.RecomputeTotal(context.Background(), "dev-new", 50)
	if err != nil {
		t.Fatalf("RecomputeTotal failed: %v", err)
	}
	if record.Used != 0 || record.Total != 60 {
		t.Fatalf("got used=%d total=%d, want used=0 total=60", record.Used, record.Total)
	}
	if record.LastReset == "" {
		t.Fatal("expected lastReset to default to now")
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	kv := store.NewMemoryStore()
	kv.SetFailing(true)
	l := NewUsageLedger(kv, 10)

	if _, err := l.TryConsume(context.Background(), "dev-1"); err == nil {
		t.Fatal("expected error when store is unavailable")
	}
}
