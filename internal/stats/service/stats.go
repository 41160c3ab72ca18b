package service

import (
	"context"
	"fmt"

	"restaurant-orders/internal/domain"
	menurepo "restaurant-orders/internal/menu/repository"
	"restaurant-orders/internal/stats/repository"
)

// StatsServiceInterface derives revenue and popularity aggregates from
// persisted orders. All methods are pure reads over the store.
type StatsServiceInterface interface {
	MostOrderedItems(ctx context.Context) ([]domain.MostOrderedItem, error)
	TotalRevenueByDate(ctx context.Context) (map[string]float64, error)
	TotalRevenueByMenuItem(ctx context.Context) (map[string]float64, error)
	AverageSessionRevenueByDate(ctx context.Context) ([]domain.SessionAverageRevenue, error)
}

type StatsService struct {
	stats repository.StatsRepository
	menu  menurepo.MenuRepository
}

func NewStatsService(stats repository.StatsRepository, menu menurepo.MenuRepository) StatsServiceInterface {
	return &StatsService{stats: stats, menu: menu}
}

func (s *StatsService) MostOrderedItems(ctx context.Context) ([]domain.MostOrderedItem, error) {
	return s.stats.MostOrderedItems(ctx)
}

// TotalRevenueByDate groups every order item by the calendar date of its
// order and sums quantity times the current catalog price.
func (s *StatsService) TotalRevenueByDate(ctx context.Context) (map[string]float64, error) {
	rows, err := s.stats.ItemRevenueRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue rows: %w", err)
	}

	revenue := make(map[string]float64)
	for _, row := range rows {
		date := row.OrderDate.Format("2006-01-02")
		revenue[date] += float64(row.Quantity) * row.CurrentPrice
	}
	return revenue, nil
}

// TotalRevenueByMenuItem reports revenue for every catalog item, including
// items never ordered, which map to zero.
func (s *StatsService) TotalRevenueByMenuItem(ctx context.Context) (map[string]float64, error) {
	menuItems, err := s.menu.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	revenue := make(map[string]float64, len(menuItems))
	for _, m := range menuItems {
		revenue[m.Name] = 0.0
	}

	rows, err := s.stats.ItemRevenueRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue rows: %w", err)
	}
	for _, row := range rows {
		revenue[row.MenuItemName] += float64(row.Quantity) * row.CurrentPrice
	}
	return revenue, nil
}

func (s *StatsService) AverageSessionRevenueByDate(ctx context.Context) ([]domain.SessionAverageRevenue, error) {
	return s.stats.AverageSessionRevenueByDate(ctx)
}
