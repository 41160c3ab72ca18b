package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/connections/database"
	"restaurant-orders/internal/domain"
)

// MenuRepository is the read-only catalog lookup the order core consumes.
type MenuRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	FindAll(ctx context.Context) ([]domain.MenuItem, error)
	FindAvailable(ctx context.Context) ([]domain.MenuItem, error)
}

type MenuPG struct {
	db *database.Conn
}

func NewMenuPG(db *database.Conn) *MenuPG {
	return &MenuPG{db: db}
}

func (r *MenuPG) FindByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price, category, available
		FROM menu_items WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}
	return &m, nil
}

func (r *MenuPG) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	return r.list(ctx, `
		SELECT id, name, price, category, available
		FROM menu_items ORDER BY id`)
}

func (r *MenuPG) FindAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	return r.list(ctx, `
		SELECT id, name, price, category, available
		FROM menu_items WHERE available = TRUE ORDER BY id`)
}

func (r *MenuPG) list(ctx context.Context, sql string) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Available); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
