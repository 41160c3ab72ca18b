package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/logger"
	orderrepo "restaurant-orders/internal/order/repository"
	"restaurant-orders/internal/session/repository"
)

// SessionServiceInterface owns the table session lifecycle: start/end,
// active-session queries and the billing summaries.
type SessionServiceInterface interface {
	StartSession(ctx context.Context, tableNumber string) (*domain.StartSessionResponse, error)
	EndSession(ctx context.Context, tableNumber string) (*domain.EndSessionResponse, error)
	GetSessionByID(ctx context.Context, id int64) (*domain.TableSessionResponse, error)
	ListActiveSessions(ctx context.Context) ([]domain.TableSessionResponse, error)
	FindActiveSessionByTable(ctx context.Context, tableNumber string) (*domain.TableSessionResponse, error)
	GetItemSummary(ctx context.Context, sessionID int64) ([]domain.ItemSummary, error)
	GetCheckoutSummary(ctx context.Context, sessionID int64) (*domain.CheckoutSummary, error)
}

type SessionService struct {
	sessions repository.SessionRepository
	orders   orderrepo.OrderRepository
	policy   domain.EmptyResultPolicy
	lg       *logger.Logger
}

func NewSessionService(sessions repository.SessionRepository, orders orderrepo.OrderRepository, policy domain.EmptyResultPolicy, lg *logger.Logger) SessionServiceInterface {
	return &SessionService{sessions: sessions, orders: orders, policy: policy, lg: lg}
}

// StartSession creates a session for the table. The store's partial unique
// index makes the insert race-safe: of N concurrent starts for one table,
// exactly one succeeds and the rest get ErrActiveSessionExists.
func (s *SessionService) StartSession(ctx context.Context, tableNumber string) (*domain.StartSessionResponse, error) {
	session, err := s.sessions.Create(ctx, tableNumber, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.lg.Info("session_started", map[string]any{"session_id": session.ID, "table": tableNumber})

	return &domain.StartSessionResponse{
		SessionID:   session.ID,
		TableNumber: session.TableNumber,
		StartTime:   session.SessionStart,
		Active:      true,
	}, nil
}

// EndSession closes the table's active session. Ending twice fails the
// second time: no active session remains to close.
func (s *SessionService) EndSession(ctx context.Context, tableNumber string) (*domain.EndSessionResponse, error) {
	session, err := s.sessions.FindActiveByTable(ctx, tableNumber)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	if err := s.sessions.CloseByID(ctx, session.ID, end); err != nil {
		return nil, err
	}

	s.lg.Info("session_ended", map[string]any{"session_id": session.ID, "table": tableNumber})

	return &domain.EndSessionResponse{
		Message:     "Session ended successfully",
		TableNumber: session.TableNumber,
		StartTime:   session.SessionStart,
		EndTime:     end,
	}, nil
}

func (s *SessionService) GetSessionByID(ctx context.Context, id int64) (*domain.TableSessionResponse, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) ListActiveSessions(ctx context.Context) ([]domain.TableSessionResponse, error) {
	sessions, err := s.sessions.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	if len(sessions) == 0 && s.policy == domain.EmptyStrict {
		return nil, domain.ErrNoActiveSessions
	}

	out := make([]domain.TableSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out, nil
}

func (s *SessionService) FindActiveSessionByTable(ctx context.Context, tableNumber string) (*domain.TableSessionResponse, error) {
	session, err := s.sessions.FindActiveByTable(ctx, tableNumber)
	if err != nil {
		return nil, err
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

// GetItemSummary flattens every item of every order of the session, in
// insertion order of orders then items. Line totals use the unit price
// snapshotted at placement.
func (s *SessionService) GetItemSummary(ctx context.Context, sessionID int64) ([]domain.ItemSummary, error) {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	orders, err := s.orders.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session orders: %w", err)
	}

	summary := make([]domain.ItemSummary, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			summary = append(summary, domain.ItemSummary{
				OrderID:    order.ID,
				ItemID:     item.ID,
				ItemName:   item.Name,
				Quantity:   item.Quantity,
				Served:     item.Served,
				TotalPrice: item.LineTotal(),
			})
		}
	}
	return summary, nil
}

// GetCheckoutSummary aggregates the session for billing. TotalItems counts
// item rows, not summed quantities.
func (s *SessionService) GetCheckoutSummary(ctx context.Context, sessionID int64) (*domain.CheckoutSummary, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session orders: %w", err)
	}

	items, err := s.GetItemSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range items {
		total += item.TotalPrice
	}

	return &domain.CheckoutSummary{
		SessionID:   session.ID,
		TableNumber: session.TableNumber,
		TotalOrders: len(orders),
		TotalItems:  len(items),
		TotalAmount: total,
		Items:       items,
	}, nil
}

func toSessionResponse(s *domain.TableSession) domain.TableSessionResponse {
	return domain.TableSessionResponse{
		SessionID:   s.ID,
		TableNumber: s.TableNumber,
		StartTime:   s.SessionStart,
		EndTime:     s.SessionEnd,
		Active:      s.Active(),
	}
}
