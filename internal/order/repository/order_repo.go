package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-orders/internal/connections/database"
	"restaurant-orders/internal/domain"
)

// OrderRepository persists orders and their line items. Placement is
// transactional: the order row and all item rows commit together or not
// at all.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindBySession(ctx context.Context, sessionID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	MarkItemServed(ctx context.Context, itemID int64) (orderID int64, err error)
	FindUnservedItems(ctx context.Context) ([]domain.KitchenQueueEntry, error)
}

type OrderPG struct {
	db *database.Conn
}

func NewOrderPG(db *database.Conn) *OrderPG {
	return &OrderPG{db: db}
}

func (r *OrderPG) CreateWithItems(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (table_session_id, status, order_date, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		order.SessionID, order.Status, order.OrderDate, order.Total,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price, served)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice, item.Served,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *OrderPG) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, table_session_id, status, order_date, total
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.SessionID, &o.Status, &o.OrderDate, &o.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	o.Items, err = r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindBySession returns every order of the session in placement order,
// items in insertion order within each order.
func (r *OrderPG) FindBySession(ctx context.Context, sessionID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, table_session_id, status, order_date, total
		FROM orders WHERE table_session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.SessionID, &o.Status, &o.OrderDate, &o.Total); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = r.itemsByOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderPG) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// MarkItemServed is idempotent in effect: serving an already-served item
// leaves it served.
func (r *OrderPG) MarkItemServed(ctx context.Context, itemID int64) (int64, error) {
	var orderID int64
	err := r.db.QueryRow(ctx, `
		UPDATE order_items SET served = TRUE WHERE id = $1
		RETURNING order_id`, itemID,
	).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrOrderItemNotFound
		}
		return 0, fmt.Errorf("failed to mark order item served: %w", err)
	}
	return orderID, nil
}

// FindUnservedItems is the kitchen queue: one consistent snapshot, oldest
// order first, item id as the stable tie-break within an order.
func (r *OrderPG) FindUnservedItems(ctx context.Context) ([]domain.KitchenQueueEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, o.id, ts.table_number, oi.name, oi.quantity, oi.served
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN table_sessions ts ON ts.id = o.table_session_id
		WHERE oi.served = FALSE
		ORDER BY o.order_date ASC, oi.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query kitchen queue: %w", err)
	}
	defer rows.Close()

	var queue []domain.KitchenQueueEntry
	for rows.Next() {
		var e domain.KitchenQueueEntry
		if err := rows.Scan(&e.OrderItemID, &e.OrderID, &e.TableNumber, &e.ItemName, &e.Quantity, &e.Served); err != nil {
			return nil, fmt.Errorf("failed to scan kitchen queue entry: %w", err)
		}
		queue = append(queue, e)
	}
	return queue, rows.Err()
}

func (r *OrderPG) itemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, unit_price, served
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Served); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
