package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/logger"
	menurepo "restaurant-orders/internal/menu/repository"
	"restaurant-orders/internal/notify"
	"restaurant-orders/internal/order/repository"
	sessionrepo "restaurant-orders/internal/session/repository"
)

// OrderServiceInterface owns order placement, serve transitions and the
// kitchen queue.
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.PlaceOrderResponse, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.OrderResponse, error)
	GetOrdersBySession(ctx context.Context, sessionID int64) ([]domain.OrderResponse, error)
	GetUnservedItemsBySession(ctx context.Context, sessionID int64) ([]domain.OrderItemResponse, error)
	GetServedItemsBySession(ctx context.Context, sessionID int64) ([]domain.OrderItemResponse, error)
	MarkOrderServed(ctx context.Context, orderID int64) (*domain.OrderResponse, error)
	ServeOrderItem(ctx context.Context, orderItemID int64) (*domain.MarkOrderItemServedResponse, error)
	CheckItemsServedStatus(ctx context.Context, orderID int64) (*domain.OrderServedStatus, error)
	GetKitchenQueue(ctx context.Context) ([]domain.KitchenQueueEntry, error)
}

type OrderService struct {
	orders    repository.OrderRepository
	sessions  sessionrepo.SessionRepository
	menu      menurepo.MenuRepository
	publisher notify.Publisher
	policy    domain.EmptyResultPolicy
	lg        *logger.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	sessions sessionrepo.SessionRepository,
	menu menurepo.MenuRepository,
	publisher notify.Publisher,
	policy domain.EmptyResultPolicy,
	lg *logger.Logger,
) OrderServiceInterface {
	return &OrderService{
		orders:    orders,
		sessions:  sessions,
		menu:      menu,
		publisher: publisher,
		policy:    policy,
		lg:        lg,
	}
}

// PlaceOrder creates an order with all its items against an active session.
// Menu items are resolved fail-fast, prices are snapshotted into the items,
// and the whole order persists atomically. The kitchen event is published
// after commit; a publish failure is logged, not surfaced, since the order
// is already durable.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.PlaceOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, domain.ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, domain.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be a positive integer",
			}
		}
	}

	session, err := s.sessions.FindActiveByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		SessionID: session.ID,
		Status:    domain.OrderPlaced,
		OrderDate: time.Now().UTC(),
	}

	for _, line := range req.Items {
		menuItem, err := s.menu.FindByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		item := domain.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			Served:     false,
		}
		order.Total += item.LineTotal()
		order.Items = append(order.Items, item)
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.lg.Info("order_placed", map[string]any{
		"order_id":   order.ID,
		"session_id": order.SessionID,
		"total":      order.Total,
		"items":      len(order.Items),
	})
	s.publishOrderPlaced(ctx, session, order)

	return &domain.PlaceOrderResponse{
		OrderID:   order.ID,
		SessionID: order.SessionID,
		Status:    string(order.Status),
		CreatedAt: order.OrderDate,
		Total:     order.Total,
		Items:     toItemResponses(order.Items),
	}, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*domain.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) GetOrdersBySession(ctx context.Context, sessionID int64) ([]domain.OrderResponse, error) {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	orders, err := s.orders.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session orders: %w", err)
	}

	out := make([]domain.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

func (s *OrderService) GetUnservedItemsBySession(ctx context.Context, sessionID int64) ([]domain.OrderItemResponse, error) {
	return s.itemsBySession(ctx, sessionID, false)
}

func (s *OrderService) GetServedItemsBySession(ctx context.Context, sessionID int64) ([]domain.OrderItemResponse, error) {
	return s.itemsBySession(ctx, sessionID, true)
}

// MarkOrderServed sets the order status unconditionally. The status field
// is independent of the per-item served flags; callers wanting the two
// coupled derive it via CheckItemsServedStatus.
func (s *OrderService) MarkOrderServed(ctx context.Context, orderID int64) (*domain.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderServed); err != nil {
		return nil, err
	}
	order.Status = domain.OrderServed

	s.lg.Info("order_marked_served", map[string]any{"order_id": orderID})

	resp := toOrderResponse(order)
	return &resp, nil
}

// ServeOrderItem flips the item's served flag. The flag is monotonic:
// there is no operation that resets it, and serving twice is harmless.
func (s *OrderService) ServeOrderItem(ctx context.Context, orderItemID int64) (*domain.MarkOrderItemServedResponse, error) {
	orderID, err := s.orders.MarkItemServed(ctx, orderItemID)
	if err != nil {
		return nil, err
	}

	s.lg.Info("order_item_served", map[string]any{"order_item_id": orderItemID, "order_id": orderID})

	evt := domain.ItemServedEvent{OrderItemID: orderItemID, OrderID: orderID, ServedAt: time.Now().UTC()}
	if err := s.publisher.ItemServed(ctx, evt); err != nil {
		s.lg.Error("item_served_publish_failed", err, map[string]any{"order_item_id": orderItemID})
	}

	return &domain.MarkOrderItemServedResponse{
		Message:     "Order item marked as served successfully",
		OrderItemID: orderItemID,
	}, nil
}

// CheckItemsServedStatus derives the three flags over the order's items.
// An order with no items yields AllServed and NoneServed both true.
func (s *OrderService) CheckItemsServedStatus(ctx context.Context, orderID int64) (*domain.OrderServedStatus, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	status := &domain.OrderServedStatus{OrderID: order.ID, AllServed: true, NoneServed: true}
	for _, item := range order.Items {
		if item.Served {
			status.SomeServed = true
			status.NoneServed = false
		} else {
			status.AllServed = false
		}
	}
	return status, nil
}

// GetKitchenQueue returns every unserved item system-wide, oldest order
// first. Under the strict policy an empty queue is a reportable condition.
func (s *OrderService) GetKitchenQueue(ctx context.Context) ([]domain.KitchenQueueEntry, error) {
	queue, err := s.orders.FindUnservedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load kitchen queue: %w", err)
	}
	if len(queue) == 0 {
		if s.policy == domain.EmptyStrict {
			return nil, domain.ErrNoPendingOrders
		}
		return []domain.KitchenQueueEntry{}, nil
	}
	return queue, nil
}

func (s *OrderService) itemsBySession(ctx context.Context, sessionID int64, served bool) ([]domain.OrderItemResponse, error) {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	orders, err := s.orders.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session orders: %w", err)
	}

	out := make([]domain.OrderItemResponse, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Served == served {
				out = append(out, toItemResponse(item))
			}
		}
	}
	return out, nil
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, session *domain.TableSession, order *domain.Order) {
	evt := domain.OrderPlacedEvent{
		OrderID:     order.ID,
		SessionID:   order.SessionID,
		TableNumber: session.TableNumber,
		PlacedAt:    order.OrderDate,
		Total:       order.Total,
	}
	for _, item := range order.Items {
		evt.Items = append(evt.Items, domain.OrderItemEvent{
			OrderItemID: item.ID,
			Name:        item.Name,
			Quantity:    item.Quantity,
		})
	}
	if err := s.publisher.OrderPlaced(ctx, evt); err != nil {
		s.lg.Error("order_placed_publish_failed", err, map[string]any{"order_id": order.ID})
	}
}

func toOrderResponse(o *domain.Order) domain.OrderResponse {
	return domain.OrderResponse{
		OrderID:   o.ID,
		SessionID: o.SessionID,
		Status:    string(o.Status),
		OrderDate: o.OrderDate,
		Total:     o.Total,
		Items:     toItemResponses(o.Items),
	}
}

func toItemResponses(items []domain.OrderItem) []domain.OrderItemResponse {
	out := make([]domain.OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}

func toItemResponse(item domain.OrderItem) domain.OrderItemResponse {
	return domain.OrderItemResponse{
		ItemID:     item.ID,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.LineTotal(),
		Served:     item.Served,
	}
}
