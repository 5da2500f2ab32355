// Package products serves the sponsor-supplied product records surfaced in
// the smartglasses comparison grid.
package products

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// SurfacedProduct is a sponsor-supplied product record, distinct from
// editorial content.
type SurfacedProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Sponsor       string   `json:"sponsor"`
	ImageURL      string   `json:"image_url,omitempty"`
	PriceCents    int      `json:"price_cents"`
	ComparePoints []string `json:"compare_points,omitempty"`
}

// Repository loads surfaced products from Postgres.
type Repository struct {
	db  *sql.DB
	log logger.Logger
}

// NewRepository creates a new products repository.
func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// ListSurfaced returns all active surfaced products ordered by rank.
func (r *Repository) ListSurfaced(ctx context.Context) ([]SurfacedProduct, error) {
	query := `
		SELECT id, name, sponsor, image_url, price_cents, compare_points
		FROM surfaced_products
		WHERE active = true
		ORDER BY rank, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query surfaced products: %w", err)
	}
	defer rows.Close()

	var products []SurfacedProduct
	for rows.Next() {
		var p SurfacedProduct
		if scanErr := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Sponsor,
			&p.ImageURL,
			&p.PriceCents,
			pq.Array(&p.ComparePoints),
		); scanErr != nil {
			return nil, fmt.Errorf("scan surfaced product: %w", scanErr)
		}
		products = append(products, p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate surfaced products: %w", rowsErr)
	}

	return products, nil
}
