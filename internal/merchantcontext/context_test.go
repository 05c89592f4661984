package merchantcontext

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
)

func TestMerchantIDFromContext(t *testing.T) {
	if _, ok := MerchantIDFromContext(context.Background()); ok {
		t.Fatalf("expected empty context to carry no merchant")
	}

	ctx := WithMerchantID(context.Background(), 42)
	id, ok := MerchantIDFromContext(ctx)
	if !ok || id != snowflake.ID(42) {
		t.Fatalf("expected merchant 42, got %v (ok=%v)", id, ok)
	}

	ctx = WithMerchantID(context.Background(), 0)
	if _, ok := MerchantIDFromContext(ctx); ok {
		t.Fatalf("expected zero merchant id to be treated as absent")
	}
}
