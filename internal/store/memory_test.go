package store

import (
	"context"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok=%v err=%v", ok, err)
	}
	if value != "v2" {
		t.Fatalf("Get(k) = %q, want overwrite to v2", value)
	}
}

func TestMemoryStoreFailing(t *testing.T) {
	s := NewMemoryStore()
	s.SetFailing(true)

	if _, _, err := s.Get(context.Background(), "k"); err != ErrStoreUnavailable {
		t.Fatalf("Get err = %v, want ErrStoreUnavailable", err)
	}
	if err := s.Set(context.Background(), "k", "v"); err != ErrStoreUnavailable {
		t.Fatalf("Set err = %v, want ErrStoreUnavailable", err)
	}
}
