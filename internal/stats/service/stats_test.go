package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/stats/repository"
)

type fakeStatsRepo struct {
	mostOrdered []domain.MostOrderedItem
	rows        []repository.ItemRevenueRow
	averages    []domain.SessionAverageRevenue
	err         error
}

func (f *fakeStatsRepo) MostOrderedItems(_ context.Context) ([]domain.MostOrderedItem, error) {
	return f.mostOrdered, f.err
}

func (f *fakeStatsRepo) ItemRevenueRows(_ context.Context) ([]repository.ItemRevenueRow, error) {
	return f.rows, f.err
}

func (f *fakeStatsRepo) AverageSessionRevenueByDate(_ context.Context) ([]domain.SessionAverageRevenue, error) {
	return f.averages, f.err
}

type fakeMenuRepo struct {
	items []domain.MenuItem
}

func (f *fakeMenuRepo) FindByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	for _, m := range f.items {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, domain.ErrMenuItemNotFound
}

func (f *fakeMenuRepo) FindAll(_ context.Context) ([]domain.MenuItem, error) {
	return append([]domain.MenuItem(nil), f.items...), nil
}

func (f *fakeMenuRepo) FindAvailable(_ context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	for _, m := range f.items {
		if m.Available {
			out = append(out, m)
		}
	}
	return out, nil
}

func day(d int, hour int) time.Time {
	return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
}

func TestTotalRevenueByDate(t *testing.T) {
	stats := &fakeStatsRepo{rows: []repository.ItemRevenueRow{
		{MenuItemName: "Margherita Pizza", Quantity: 2, CurrentPrice: 12.99, OrderDate: day(28, 12)},
		{MenuItemName: "Espresso", Quantity: 3, CurrentPrice: 2.50, OrderDate: day(28, 19)},
		{MenuItemName: "Margherita Pizza", Quantity: 1, CurrentPrice: 12.99, OrderDate: day(29, 13)},
	}}
	svc := NewStatsService(stats, &fakeMenuRepo{})

	revenue, err := svc.TotalRevenueByDate(context.Background())
	if err != nil {
		t.Fatalf("TotalRevenueByDate returned error: %v", err)
	}
	if len(revenue) != 2 {
		t.Fatalf("expected 2 dates, got %d: %v", len(revenue), revenue)
	}

	// same calendar date collapses regardless of time of day
	assertAmount(t, revenue, "2026-08-28", 2*12.99+3*2.50)
	assertAmount(t, revenue, "2026-08-29", 12.99)
}

func TestTotalRevenueByDate_Empty(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{}, &fakeMenuRepo{})
	revenue, err := svc.TotalRevenueByDate(context.Background())
	if err != nil {
		t.Fatalf("TotalRevenueByDate returned error: %v", err)
	}
	if len(revenue) != 0 {
		t.Fatalf("expected empty map, got %v", revenue)
	}
}

func TestTotalRevenueByMenuItem(t *testing.T) {
	menu := &fakeMenuRepo{items: []domain.MenuItem{
		{ID: 1, Name: "Margherita Pizza", Price: 12.99, Available: true},
		{ID: 2, Name: "Caesar Salad", Price: 8.75, Available: true},
		{ID: 3, Name: "House Red Wine", Price: 5.50, Available: false},
	}}
	stats := &fakeStatsRepo{rows: []repository.ItemRevenueRow{
		{MenuItemName: "Margherita Pizza", Quantity: 2, CurrentPrice: 12.99, OrderDate: day(28, 12)},
		{MenuItemName: "Margherita Pizza", Quantity: 1, CurrentPrice: 12.99, OrderDate: day(29, 12)},
		{MenuItemName: "Caesar Salad", Quantity: 4, CurrentPrice: 8.75, OrderDate: day(29, 12)},
	}}
	svc := NewStatsService(stats, menu)

	revenue, err := svc.TotalRevenueByMenuItem(context.Background())
	if err != nil {
		t.Fatalf("TotalRevenueByMenuItem returned error: %v", err)
	}
	if len(revenue) != 3 {
		t.Fatalf("expected every catalog item present, got %v", revenue)
	}

	assertAmount(t, revenue, "Margherita Pizza", 3*12.99)
	assertAmount(t, revenue, "Caesar Salad", 4*8.75)
	// never ordered, still reported
	assertAmount(t, revenue, "House Red Wine", 0)
}

func TestMostOrderedItems(t *testing.T) {
	want := []domain.MostOrderedItem{
		{Name: "Margherita Pizza", TotalQuantity: 12, OrderCount: 7},
		{Name: "Espresso", TotalQuantity: 9, OrderCount: 9},
	}
	svc := NewStatsService(&fakeStatsRepo{mostOrdered: want}, &fakeMenuRepo{})

	got, err := svc.MostOrderedItems(context.Background())
	if err != nil {
		t.Fatalf("MostOrderedItems returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].TotalQuantity >= got[j].TotalQuantity }) {
		t.Errorf("entries not ordered by quantity: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAverageSessionRevenueByDate(t *testing.T) {
	want := []domain.SessionAverageRevenue{
		{Date: "2026-08-28", AverageRevenue: 31.50},
		{Date: "2026-08-29", AverageRevenue: 12.99},
	}
	svc := NewStatsService(&fakeStatsRepo{averages: want}, &fakeMenuRepo{})

	got, err := svc.AverageSessionRevenueByDate(context.Background())
	if err != nil {
		t.Fatalf("AverageSessionRevenueByDate returned error: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStats_RepoError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewStatsService(&fakeStatsRepo{err: boom}, &fakeMenuRepo{})

	if _, err := svc.TotalRevenueByDate(context.Background()); !errors.Is(err, boom) {
		t.Errorf("TotalRevenueByDate error = %v, want wrapped %v", err, boom)
	}
	if _, err := svc.TotalRevenueByMenuItem(context.Background()); !errors.Is(err, boom) {
		t.Errorf("TotalRevenueByMenuItem error = %v, want wrapped %v", err, boom)
	}
}

func assertAmount(t *testing.T, m map[string]float64, key string, want float64) {
	t.Helper()
	got, ok := m[key]
	if !ok {
		t.Fatalf("missing key %q in %v", key, m)
	}
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("%s = %v, want %v", key, got, want)
	}
}
