package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/weatherwidget/backend/internal/domain"
)

func TestMockRepositoryNewestFirst(t *testing.T) {
	r := NewMockRepository()
	ctx := context.Background()

	for i := 0; i < mockCapacity+5; i++ {
		if err := r.SaveLookup(ctx, domain.LookupLog{ID: fmt.Sprint(i)}); err != nil {
			t.Fatalf("SaveLookup failed: %v", err)
		}
	}

	list, err := r.RecentLookups(ctx, 3)
	if err != nil {
		t.Fatalf("RecentLookups failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if list[0].ID != fmt.Sprint(mockCapacity+4) {
		t.Errorf("expected newest entry first, got %s", list[0].ID)
	}

	all, _ := r.RecentLookups(ctx, 1000)
	if len(all) != mockCapacity {
		t.Errorf("expected capacity %d, got %d", mockCapacity, len(all))
	}
}
