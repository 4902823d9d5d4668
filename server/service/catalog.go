package service

import (
	"context"

	"github.com/moimlab/moim/server/database"
)

type CatalogStore interface {
	GetCategories(ctx context.Context) ([]database.Category, error)
	GetCities(ctx context.Context) ([]database.City, error)
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// CatalogService serves the fixed category and city lookup tables.
type CatalogService struct {
	store CatalogStore
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]database.Category, error) {
	return s.store.GetCategories(ctx)
}

func (s *CatalogService) GetCities(ctx context.Context) ([]database.City, error) {
	return s.store.GetCities(ctx)
}
