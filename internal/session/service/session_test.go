package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/logger"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*domain.TableSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]*domain.TableSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, tableNumber string, start time.Time) (*domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.TableNumber == tableNumber && s.SessionEnd == nil {
			return nil, domain.ErrActiveSessionExists
		}
	}
	f.nextID++
	s := &domain.TableSession{ID: f.nextID, TableNumber: tableNumber, SessionStart: start}
	f.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id int64) (*domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) FindActiveByID(_ context.Context, id int64) (*domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.SessionEnd != nil {
		return nil, domain.ErrNoActiveTableSession
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) FindActiveByTable(_ context.Context, tableNumber string) (*domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.TableNumber == tableNumber && s.SessionEnd == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNoActiveTableSession
}

func (f *fakeSessionRepo) FindActive(_ context.Context) ([]domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TableSession
	for _, s := range f.sessions {
		if s.SessionEnd == nil {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSessionRepo) CloseByID(_ context.Context, id int64, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.SessionEnd != nil {
		return domain.ErrNoActiveTableSession
	}
	s.SessionEnd = &end
	return nil
}

type fakeOrderRepo struct {
	mu         sync.Mutex
	nextOrder  int64
	nextItem   int64
	orders     map[int64]*domain.Order
	tableBySes map[int64]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[int64]*domain.Order),
		tableBySes: make(map[int64]string),
	}
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextOrder++
	order.ID = f.nextOrder
	for i := range order.Items {
		f.nextItem++
		order.Items[i].ID = f.nextItem
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeOrderRepo) FindBySession(_ context.Context, sessionID int64) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.orders {
		if o.SessionID == sessionID {
			cp := *o
			cp.Items = append([]domain.OrderItem(nil), o.Items...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID int64, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) MarkItemServed(_ context.Context, itemID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].Served = true
				return o.ID, nil
			}
		}
	}
	return 0, domain.ErrOrderItemNotFound
}

func (f *fakeOrderRepo) FindUnservedItems(_ context.Context) ([]domain.KitchenQueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []*domain.Order
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		return orders[i].ID < orders[j].ID
	})

	var queue []domain.KitchenQueueEntry
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Served {
				continue
			}
			queue = append(queue, domain.KitchenQueueEntry{
				OrderItemID: item.ID,
				OrderID:     o.ID,
				TableNumber: f.tableBySes[o.SessionID],
				ItemName:    item.Name,
				Quantity:    item.Quantity,
				Served:      item.Served,
			})
		}
	}
	return queue, nil
}

func newSessionService(t *testing.T, policy domain.EmptyResultPolicy) (SessionServiceInterface, *fakeSessionRepo, *fakeOrderRepo) {
	t.Helper()
	sessions := newFakeSessionRepo()
	orders := newFakeOrderRepo()
	svc := NewSessionService(sessions, orders, policy, logger.New("session-test"))
	return svc, sessions, orders
}

func TestStartSession(t *testing.T) {
	svc, _, _ := newSessionService(t, domain.EmptyStrict)
	ctx := context.Background()

	resp, err := svc.StartSession(ctx, "T1")
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	if !resp.Active {
		t.Errorf("expected active=true")
	}
	if resp.TableNumber != "T1" {
		t.Errorf("expected table T1, got %q", resp.TableNumber)
	}

	// second start on the same table before ending must conflict
	if _, err := svc.StartSession(ctx, "T1"); !errors.Is(err, domain.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}

	// a different table is independent
	if _, err := svc.StartSession(ctx, "T2"); err != nil {
		t.Fatalf("StartSession(T2) returned error: %v", err)
	}
}

func TestStartSession_Concurrent(t *testing.T) {
	svc, _, _ := newSessionService(t, domain.EmptyStrict)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartSession(ctx, "T7")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrActiveSessionExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d/%d", n-1, successes, conflicts)
	}
}

func TestEndSession(t *testing.T) {
	svc, _, _ := newSessionService(t, domain.EmptyStrict)
	ctx := context.Background()

	start, err := svc.StartSession(ctx, "T1")
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}

	end, err := svc.EndSession(ctx, "T1")
	if err != nil {
		t.Fatalf("EndSession returned error: %v", err)
	}
	if !end.StartTime.Equal(start.StartTime) {
		t.Errorf("end response start time %v does not match session start %v", end.StartTime, start.StartTime)
	}
	if end.EndTime.Before(end.StartTime) {
		t.Errorf("end time %v before start time %v", end.EndTime, end.StartTime)
	}

	// ending twice fails: no active session remains
	if _, err := svc.EndSession(ctx, "T1"); !errors.Is(err, domain.ErrNoActiveTableSession) {
		t.Fatalf("expected ErrNoActiveTableSession, got %v", err)
	}

	// the table can be seated again after the session ends
	if _, err := svc.StartSession(ctx, "T1"); err != nil {
		t.Fatalf("StartSession after end returned error: %v", err)
	}
}

func TestGetSessionByID_NotFound(t *testing.T) {
	svc, _, _ := newSessionService(t, domain.EmptyStrict)
	if _, err := svc.GetSessionByID(context.Background(), 42); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListActiveSessions_Policy(t *testing.T) {
	t.Run("strict reports empty as error", func(t *testing.T) {
		svc, _, _ := newSessionService(t, domain.EmptyStrict)
		if _, err := svc.ListActiveSessions(context.Background()); !errors.Is(err, domain.ErrNoActiveSessions) {
			t.Fatalf("expected ErrNoActiveSessions, got %v", err)
		}
	})

	t.Run("lenient returns empty list", func(t *testing.T) {
		svc, _, _ := newSessionService(t, domain.EmptyLenient)
		sessions, err := svc.ListActiveSessions(context.Background())
		if err != nil {
			t.Fatalf("ListActiveSessions returned error: %v", err)
		}
		if len(sessions) != 0 {
			t.Fatalf("expected empty list, got %d sessions", len(sessions))
		}
	})

	t.Run("only open sessions are listed", func(t *testing.T) {
		svc, _, _ := newSessionService(t, domain.EmptyStrict)
		ctx := context.Background()
		if _, err := svc.StartSession(ctx, "T1"); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.StartSession(ctx, "T2"); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.EndSession(ctx, "T1"); err != nil {
			t.Fatal(err)
		}

		sessions, err := svc.ListActiveSessions(ctx)
		if err != nil {
			t.Fatalf("ListActiveSessions returned error: %v", err)
		}
		if len(sessions) != 1 || sessions[0].TableNumber != "T2" {
			t.Fatalf("expected only T2 active, got %+v", sessions)
		}
	})
}

func TestGetItemSummary(t *testing.T) {
	svc, _, orders := newSessionService(t, domain.EmptyStrict)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, "T3")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	first := &domain.Order{
		SessionID: started.SessionID,
		Status:    domain.OrderPlaced,
		OrderDate: now,
		Total:     25.98,
		Items: []domain.OrderItem{
			{MenuItemID: 1, Name: "Margherita Pizza", Quantity: 2, UnitPrice: 12.99},
		},
	}
	second := &domain.Order{
		SessionID: started.SessionID,
		Status:    domain.OrderPlaced,
		OrderDate: now.Add(time.Minute),
		Total:     15.25,
		Items: []domain.OrderItem{
			{MenuItemID: 4, Name: "Caesar Salad", Quantity: 1, UnitPrice: 8.75, Served: true},
			{MenuItemID: 6, Name: "Tomato Soup", Quantity: 1, UnitPrice: 6.50},
		},
	}
	if err := orders.CreateWithItems(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := orders.CreateWithItems(ctx, second); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.GetItemSummary(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("GetItemSummary returned error: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(summary))
	}

	// insertion order: first order's items, then second order's
	if summary[0].ItemName != "Margherita Pizza" || summary[1].ItemName != "Caesar Salad" || summary[2].ItemName != "Tomato Soup" {
		t.Errorf("unexpected summary order: %+v", summary)
	}
	if summary[0].TotalPrice != 25.98 {
		t.Errorf("expected line total 25.98, got %v", summary[0].TotalPrice)
	}
	if !summary[1].Served || summary[2].Served {
		t.Errorf("served flags not carried through: %+v", summary)
	}
	if summary[0].OrderID != first.ID || summary[2].OrderID != second.ID {
		t.Errorf("order ids not carried through: %+v", summary)
	}
}

func TestGetItemSummary_SessionNotFound(t *testing.T) {
	svc, _, _ := newSessionService(t, domain.EmptyStrict)
	if _, err := svc.GetItemSummary(context.Background(), 99); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetCheckoutSummary(t *testing.T) {
	svc, _, orders := newSessionService(t, domain.EmptyStrict)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, "T5")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	if err := orders.CreateWithItems(ctx, &domain.Order{
		SessionID: started.SessionID,
		Status:    domain.OrderPlaced,
		OrderDate: now,
		Items: []domain.OrderItem{
			{MenuItemID: 1, Name: "Margherita Pizza", Quantity: 2, UnitPrice: 12.99},
			{MenuItemID: 10, Name: "Espresso", Quantity: 3, UnitPrice: 2.50},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := orders.CreateWithItems(ctx, &domain.Order{
		SessionID: started.SessionID,
		Status:    domain.OrderPlaced,
		OrderDate: now.Add(time.Minute),
		Items: []domain.OrderItem{
			{MenuItemID: 8, Name: "Tiramisu", Quantity: 1, UnitPrice: 7.25},
		},
	}); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.GetCheckoutSummary(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("GetCheckoutSummary returned error: %v", err)
	}
	if summary.TotalOrders != 2 {
		t.Errorf("expected 2 orders, got %d", summary.TotalOrders)
	}
	// item rows, not summed quantities
	if summary.TotalItems != 3 {
		t.Errorf("expected 3 item rows, got %d", summary.TotalItems)
	}
	want := 2*12.99 + 3*2.50 + 7.25
	if diff := summary.TotalAmount - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected total %v, got %v", want, summary.TotalAmount)
	}
	if summary.TableNumber != "T5" {
		t.Errorf("expected table T5, got %q", summary.TableNumber)
	}
	if len(summary.Items) != 3 {
		t.Errorf("expected 3 summary items, got %d", len(summary.Items))
	}
}
