package products

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

func TestRepository_ListSurfaced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "sponsor", "image_url", "price_cents", "compare_points"}).
		AddRow("p1", "Lens Pro", "Acme Optics", "https://cdn.example.com/p1.png", 29900, "{battery,weight}").
		AddRow("p2", "Lens Lite", "Acme Optics", "", 14900, "{}")
	mock.ExpectQuery("SELECT id, name, sponsor, image_url, price_cents, compare_points").
		WillReturnRows(rows)

	repo := NewRepository(db, logger.Nop())
	products, err := repo.ListSurfaced(context.Background())
	if err != nil {
		t.Fatalf("ListSurfaced: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].PriceCents != 29900 {
		t.Errorf("price = %d, want 29900", products[0].PriceCents)
	}
	if len(products[0].ComparePoints) != 2 {
		t.Errorf("compare points = %v, want 2 entries", products[0].ComparePoints)
	}
}

type staticLister struct {
	products []SurfacedProduct
	err      error
	calls    int
}

func (s *staticLister) ListSurfaced(context.Context) ([]SurfacedProduct, error) {
	s.calls++
	return s.products, s.err
}

func TestCachedLister_NilClientFallsThrough(t *testing.T) {
	lister := &staticLister{products: []SurfacedProduct{{ID: "p1", Name: "Lens Pro"}}}
	cache := NewCachedLister(lister, nil, 0, logger.Nop())

	products, err := cache.ListSurfaced(context.Background())
	if err != nil {
		t.Fatalf("ListSurfaced: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("unexpected products: %+v", products)
	}
	if lister.calls != 1 {
		t.Errorf("backing store calls = %d, want 1", lister.calls)
	}
}

func TestCachedLister_BackingStoreErrorPropagates(t *testing.T) {
	wantErr := errors.New("db down")
	cache := NewCachedLister(&staticLister{err: wantErr}, nil, 0, logger.Nop())

	if _, err := cache.ListSurfaced(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("ListSurfaced error = %v, want %v", err, wantErr)
	}
}

func TestNewWarmer_RejectsBadSchedule(t *testing.T) {
	cache := NewCachedLister(&staticLister{}, nil, 0, logger.Nop())
	if _, err := NewWarmer(cache, "not a cron spec", logger.Nop()); err == nil {
		t.Error("NewWarmer accepted invalid schedule")
	}
}
