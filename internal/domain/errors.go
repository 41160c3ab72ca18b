package domain

import (
	"errors"
	"fmt"
)

var (
	ErrActiveSessionExists  = errors.New("active session already exists for this table")
	ErrSessionNotFound      = errors.New("table session not found")
	ErrNoActiveTableSession = errors.New("no active session for this table")
	ErrNoActiveSessions     = errors.New("no active table sessions found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderItemNotFound    = errors.New("order item not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrNoPendingOrders      = errors.New("no pending orders in the kitchen")
)

// ValidationError reports a rejected request field at the service boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EmptyResultPolicy controls whether list operations treat an empty result
// as a reportable condition (strict) or as a normal empty success (lenient).
type EmptyResultPolicy string

const (
	EmptyStrict  EmptyResultPolicy = "strict"
	EmptyLenient EmptyResultPolicy = "lenient"
)
