package domain

import "time"

// TableSession is the occupancy period of one table, bounded by start/end.
// A session with a nil SessionEnd is active; the store guarantees at most one
// active session per table via a partial unique index.
type TableSession struct {
	ID           int64
	TableNumber  string
	SessionStart time.Time
	SessionEnd   *time.Time
}

func (s *TableSession) Active() bool { return s.SessionEnd == nil }

type OrderStatus string

const (
	OrderPlaced OrderStatus = "PLACED"
	OrderServed OrderStatus = "SERVED"
)

// Order is one placed batch of menu item requests within a session.
// Total is computed at placement time and never recomputed afterwards.
type Order struct {
	ID        int64
	SessionID int64
	Status    OrderStatus
	OrderDate time.Time
	Total     float64
	Items     []OrderItem
}

// OrderItem is one line of an order. UnitPrice is the menu price snapshotted
// at placement time; the served flag only ever flips false -> true.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Name       string
	Quantity   int
	UnitPrice  float64
	Served     bool
}

func (i *OrderItem) LineTotal() float64 { return float64(i.Quantity) * i.UnitPrice }

// MenuItem is read-only reference data; the core never mutates the catalog.
type MenuItem struct {
	ID        int64
	Name      string
	Price     float64
	Category  string
	Available bool
}
