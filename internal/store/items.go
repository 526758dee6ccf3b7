package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/artikli/internal/model"
)

const itemColumns = `id, name, price, is_offer`

// GetItem returns an item by ID, or nil if it does not exist.
func (s *Session) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	rows, err := s.query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("getting item: %w", err)
		}
		return nil, nil
	}
	item, err := scanItem(rows)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns every item in storage order.
func (s *Session) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.query(ctx, `SELECT `+itemColumns+` FROM items`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertItem adds a new item with a caller-chosen ID.
func (s *Session) InsertItem(ctx context.Context, id int64, in model.ItemInput) error {
	_, err := s.exec(ctx,
		`INSERT INTO items (id, name, price, is_offer) VALUES (?, ?, ?, ?)`,
		id, in.Name, in.Price, in.IsOffer,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// UpdateItem overwrites the mutable fields of an existing item.
func (s *Session) UpdateItem(ctx context.Context, id int64, in model.ItemInput) error {
	_, err := s.exec(ctx,
		`UPDATE items SET name = ?, price = ?, is_offer = ? WHERE id = ?`,
		in.Name, in.Price, in.IsOffer, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem removes an item.
func (s *Session) DeleteItem(ctx context.Context, id int64) error {
	_, err := s.exec(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// RefreshItem re-reads an item after the session has been committed, picking
// up any values the database assigned. Returns nil if the item is gone.
func (s *Session) RefreshItem(ctx context.Context, id int64) (*model.Item, error) {
	if s.tx != nil {
		return nil, fmt.Errorf("refreshing item: session not committed")
	}
	row := s.db.QueryRowContext(ctx,
		s.db.Dialect.Rebind(`SELECT `+itemColumns+` FROM items WHERE id = ?`), id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (model.Item, error) {
	var item model.Item
	var name sql.NullString
	var price sql.NullFloat64
	if err := sc.Scan(&item.ID, &name, &price, &item.IsOffer); err != nil {
		if err == sql.ErrNoRows {
			return item, err
		}
		return item, fmt.Errorf("scanning item: %w", err)
	}
	item.Name = name.String
	item.Price = price.Float64
	return item, nil
}
