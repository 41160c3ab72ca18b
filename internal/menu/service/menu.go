package service

import (
	"context"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/menu/repository"
)

// MenuServiceInterface exposes read-only catalog lookups. The catalog is
// maintained elsewhere; this service never writes.
type MenuServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.MenuItemResponse, error)
	List(ctx context.Context) ([]domain.MenuItemResponse, error)
	ListAvailable(ctx context.Context) ([]domain.MenuItemResponse, error)
}

type MenuService struct {
	menu repository.MenuRepository
}

func NewMenuService(menu repository.MenuRepository) MenuServiceInterface {
	return &MenuService{menu: menu}
}

func (s *MenuService) GetByID(ctx context.Context, id int64) (*domain.MenuItemResponse, error) {
	m, err := s.menu.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMenuResponse(*m)
	return &resp, nil
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItemResponse, error) {
	items, err := s.menu.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMenuResponses(items), nil
}

func (s *MenuService) ListAvailable(ctx context.Context) ([]domain.MenuItemResponse, error) {
	items, err := s.menu.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return toMenuResponses(items), nil
}

func toMenuResponses(items []domain.MenuItem) []domain.MenuItemResponse {
	out := make([]domain.MenuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toMenuResponse(m))
	}
	return out
}

func toMenuResponse(m domain.MenuItem) domain.MenuItemResponse {
	return domain.MenuItemResponse{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Category:  m.Category,
		Available: m.Available,
	}
}
