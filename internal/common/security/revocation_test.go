package security

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	if revoked, _ := store.IsRevoked(ctx, "abc"); revoked {
		t.Fatal("unknown jti reported as revoked")
	}

	if err := store.Revoke(ctx, "abc", time.Minute); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, "abc"); !revoked {
		t.Error("expected jti to be revoked")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := store.IsRevoked(ctx, "abc"); revoked {
		t.Error("expected revocation to lapse after ttl")
	}
}

func TestMemoryRevocationStore_NonPositiveTTL(t *testing.T) {
	store := NewMemoryRevocationStore()
	_ = store.Revoke(context.Background(), "gone", 0)
	if revoked, _ := store.IsRevoked(context.Background(), "gone"); revoked {
		t.Error("expired token should not be stored")
	}
}
