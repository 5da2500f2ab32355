package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// Repository stores knowledge items in Postgres.
type Repository struct {
	db  *sql.DB
	log logger.Logger
}

// NewRepository creates a new knowledge repository.
func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Create inserts a new knowledge item, assigning it an ID.
func (r *Repository) Create(ctx context.Context, item *Item) error {
	if !item.Kind.Valid() {
		return fmt.Errorf("invalid knowledge kind: %q", item.Kind)
	}
	item.ID = uuid.New().String()

	query := `
		INSERT INTO knowledge_items (id, kind, label, keywords, summary, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Kind,
		item.Label,
		pq.Array(item.Keywords),
		item.Summary,
		item.URL,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert knowledge item: %w", err)
	}
	return nil
}

// List returns all knowledge items in insertion order.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	query := `
		SELECT id, kind, label, keywords, summary, url
		FROM knowledge_items
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query knowledge items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if scanErr := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.Label,
			pq.Array(&item.Keywords),
			&item.Summary,
			&item.URL,
		); scanErr != nil {
			return nil, fmt.Errorf("scan knowledge item: %w", scanErr)
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate knowledge items: %w", rowsErr)
	}

	return items, nil
}

// Delete removes a knowledge item by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete knowledge item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Service ranks stored knowledge items against free-text queries.
type Service struct {
	repo *Repository
	log  logger.Logger
}

// NewService creates a new knowledge search service.
func NewService(repo *Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create adds a new item to the catalog.
func (s *Service) Create(ctx context.Context, item *Item) error {
	return s.repo.Create(ctx, item)
}

// Delete removes an item from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Search loads the catalog and ranks it against query.
func (s *Service) Search(ctx context.Context, query string) ([]Ranked, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load knowledge items: %w", err)
	}

	ranked := Rank(query, items)
	s.log.Debug("Knowledge search",
		logger.String("query", query),
		logger.Int("items", len(items)),
	)
	return ranked, nil
}
