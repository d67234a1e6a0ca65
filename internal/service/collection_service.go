package service

import (
	"context"
	"strings"

	"chartview/internal/model"
	"chartview/internal/repository"

	"go.uber.org/zap"
)

// CollectionService handles collection and symbol listing.
type CollectionService struct {
	repo   *repository.CollectionRepository
	logger *zap.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(repo *repository.CollectionRepository, logger *zap.Logger) *CollectionService {
	return &CollectionService{
		repo:   repo,
		logger: logger,
	}
}

// ListCollections retrieves all collection names from the store.
func (s *CollectionService) ListCollections(ctx context.Context) ([]string, error) {
	return s.repo.ListCollections(ctx)
}

// ListSymbols returns a collection's symbols, optionally narrowed by a
// case-insensitive substring match against ticker or display name.
func (s *CollectionService) ListSymbols(ctx context.Context, collection, search string) ([]model.Symbol, error) {
	symbols, err := s.repo.ListSymbols(ctx, collection)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return symbols, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]model.Symbol, 0, len(symbols))
	for _, sym := range symbols {
		if strings.Contains(strings.ToLower(sym.Symbol), needle) ||
			strings.Contains(strings.ToLower(sym.Name), needle) {
			filtered = append(filtered, sym)
		}
	}
	return filtered, nil
}
