package domain

import "time"

type StartSessionRequest struct {
	TableNumber string `json:"table_number"`
}

type StartSessionResponse struct {
	SessionID   int64     `json:"session_id"`
	TableNumber string    `json:"table_number"`
	StartTime   time.Time `json:"start_time"`
	Active      bool      `json:"active"`
}

type EndSessionResponse struct {
	Message     string    `json:"message"`
	TableNumber string    `json:"table_number"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type TableSessionResponse struct {
	SessionID   int64      `json:"session_id"`
	TableNumber string     `json:"table_number"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Active      bool       `json:"active"`
}

type PlaceOrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type PlaceOrderRequest struct {
	SessionID int64                   `json:"session_id"`
	Items     []PlaceOrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	ItemID     int64   `json:"item_id"`
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Served     bool    `json:"served"`
}

type PlaceOrderResponse struct {
	OrderID   int64               `json:"order_id"`
	SessionID int64               `json:"session_id"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Total     float64             `json:"total"`
	Items     []OrderItemResponse `json:"items"`
}

type OrderResponse struct {
	OrderID   int64               `json:"order_id"`
	SessionID int64               `json:"session_id"`
	Status    string              `json:"status"`
	OrderDate time.Time           `json:"order_date"`
	Total     float64             `json:"total"`
	Items     []OrderItemResponse `json:"items"`
}

type MarkOrderItemServedResponse struct {
	Message     string `json:"message"`
	OrderItemID int64  `json:"order_item_id"`
}

// OrderServedStatus reports the three derived flags over an order's items.
// An order with no items yields AllServed and NoneServed both true.
type OrderServedStatus struct {
	OrderID    int64 `json:"order_id"`
	AllServed  bool  `json:"all_served"`
	SomeServed bool  `json:"some_served"`
	NoneServed bool  `json:"none_served"`
}

// KitchenQueueEntry is one unserved order item annotated with its order and
// table, in FIFO order of order placement.
type KitchenQueueEntry struct {
	OrderItemID int64  `json:"order_item_id"`
	OrderID     int64  `json:"order_id"`
	TableNumber string `json:"table_number"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	Served      bool   `json:"served"`
}

// ItemSummary is one flattened line of a session's ordered items.
type ItemSummary struct {
	OrderID    int64   `json:"order_id"`
	ItemID     int64   `json:"item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	Served     bool    `json:"served"`
	TotalPrice float64 `json:"total_price"`
}

// CheckoutSummary aggregates a session for billing. TotalItems counts item
// rows, not summed quantities.
type CheckoutSummary struct {
	SessionID   int64         `json:"session_id"`
	TableNumber string        `json:"table_number"`
	TotalOrders int           `json:"total_orders"`
	TotalItems  int           `json:"total_items"`
	TotalAmount float64       `json:"total_amount"`
	Items       []ItemSummary `json:"items"`
}

type MostOrderedItem struct {
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
	OrderCount    int64  `json:"order_count"`
}

type DateRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type SessionAverageRevenue struct {
	Date           string  `json:"date"`
	AverageRevenue float64 `json:"average_revenue"`
}

type MenuItemResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Available bool    `json:"available"`
}
