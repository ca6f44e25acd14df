package grocery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of weekly grocery lists. History is
// kept outside the engine: a list is written once per cycle after
// matching and read back only for inspection.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new grocery list repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores a list for its week, replacing any earlier run of the
// same cycle.
func (r *Repository) Save(ctx context.Context, list *List) error {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal grocery list items: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (week, items, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(week) DO UPDATE SET items = excluded.items, created_at = excluded.created_at`,
		list.Week, string(itemsJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert grocery list: %w", err)
	}
	return nil
}

// GetByWeek retrieves the list saved for a week, or nil when none exists.
func (r *Repository) GetByWeek(ctx context.Context, week string) (*List, error) {
	var itemsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT items FROM grocery_lists WHERE week = ?`, week,
	).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery list for week %s: %w", week, err)
	}

	var items []ListItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list items: %w", err)
	}

	return &List{Week: week, Items: items}, nil
}

// DeleteByWeek removes the list saved for a week.
func (r *Repository) DeleteByWeek(ctx context.Context, week string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM grocery_lists WHERE week = ?`, week)
	if err != nil {
		return fmt.Errorf("failed to delete grocery list for week %s: %w", week, err)
	}
	return nil
}
