package repository

import (
	"context"
	"fmt"
	"time"

	"restaurant-orders/internal/connections/database"
	"restaurant-orders/internal/domain"
)

// ItemRevenueRow is one order item joined with its order date and the
// current catalog price of its menu item. Revenue aggregates use the
// current price, not the placement-time snapshot.
type ItemRevenueRow struct {
	MenuItemName string
	Quantity     int
	CurrentPrice float64
	OrderDate    time.Time
}

// StatsRepository answers the read-only aggregate queries. It never
// mutates core state.
type StatsRepository interface {
	MostOrderedItems(ctx context.Context) ([]domain.MostOrderedItem, error)
	ItemRevenueRows(ctx context.Context) ([]ItemRevenueRow, error)
	AverageSessionRevenueByDate(ctx context.Context) ([]domain.SessionAverageRevenue, error)
}

type StatsPG struct {
	db *database.Conn
}

func NewStatsPG(db *database.Conn) *StatsPG {
	return &StatsPG{db: db}
}

// MostOrderedItems groups served items by menu item name, most ordered
// first; ties break on name so the order is stable.
func (r *StatsPG) MostOrderedItems(ctx context.Context) ([]domain.MostOrderedItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.name, SUM(oi.quantity), COUNT(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.served = TRUE
		GROUP BY m.name
		ORDER BY SUM(oi.quantity) DESC, m.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query most ordered items: %w", err)
	}
	defer rows.Close()

	var items []domain.MostOrderedItem
	for rows.Next() {
		var it domain.MostOrderedItem
		if err := rows.Scan(&it.Name, &it.TotalQuantity, &it.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan most ordered item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *StatsPG) ItemRevenueRows(ctx context.Context) ([]ItemRevenueRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.name, oi.quantity, m.price, o.order_date
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		ORDER BY o.order_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query item revenue rows: %w", err)
	}
	defer rows.Close()

	var out []ItemRevenueRow
	for rows.Next() {
		var row ItemRevenueRow
		if err := rows.Scan(&row.MenuItemName, &row.Quantity, &row.CurrentPrice, &row.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan item revenue row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// AverageSessionRevenueByDate computes each session's order total (zero
// for sessions with no orders), then averages per calendar date of the
// session start.
func (r *StatsPG) AverageSessionRevenueByDate(ctx context.Context) ([]domain.SessionAverageRevenue, error) {
	rows, err := r.db.Query(ctx, `
		SELECT TO_CHAR(session_totals.session_start, 'YYYY-MM-DD') AS session_date,
		       AVG(session_totals.session_total) AS avg_total
		FROM (
			SELECT ts.id, ts.session_start, COALESCE(SUM(o.total), 0) AS session_total
			FROM table_sessions ts
			LEFT JOIN orders o ON ts.id = o.table_session_id
			GROUP BY ts.id, ts.session_start
		) AS session_totals
		GROUP BY session_date
		ORDER BY session_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query average session revenue: %w", err)
	}
	defer rows.Close()

	var out []domain.SessionAverageRevenue
	for rows.Next() {
		var rec domain.SessionAverageRevenue
		if err := rows.Scan(&rec.Date, &rec.AverageRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan average session revenue: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
