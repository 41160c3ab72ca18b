package domain

import "time"

// OrderPlacedEvent is published to the kitchen exchange after an order and
// all of its items are committed.
type OrderPlacedEvent struct {
	OrderID     int64            `json:"order_id"`
	SessionID   int64            `json:"session_id"`
	TableNumber string           `json:"table_number"`
	PlacedAt    time.Time        `json:"placed_at"`
	Total       float64          `json:"total"`
	Items       []OrderItemEvent `json:"items"`
}

type OrderItemEvent struct {
	OrderItemID int64  `json:"order_item_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// ItemServedEvent is published when a single order item is marked served.
type ItemServedEvent struct {
	OrderItemID int64     `json:"order_item_id"`
	OrderID     int64     `json:"order_id"`
	ServedAt    time.Time `json:"served_at"`
}
