package repository

import (
	"context"
	"errors"
	"fmt"

	"chartview/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrCollectionNotFound is returned when the requested collection table
// does not exist in the database.
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionRepository handles read-only access to the symbol collection
// database. Each user table is one named collection of symbols.
type CollectionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCollectionRepository creates a new collection repository.
func NewCollectionRepository(db *sqlx.DB, logger *zap.Logger) *CollectionRepository {
	return &CollectionRepository{
		db:     db,
		logger: logger,
	}
}

// ListCollections returns the names of all user tables in the database,
// excluding sqlite internals.
func (r *CollectionRepository) ListCollections(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		r.logger.Error("Failed to list collections", zap.Error(err))
		return nil, err
	}

	return names, nil
}

// ListSymbols returns the distinct symbols in one collection table,
// ordered by ticker. Table names cannot be bound parameters, so the name
// is validated against sqlite_master before being interpolated.
func (r *CollectionRepository) ListSymbols(ctx context.Context, collection string) ([]model.Symbol, error) {
	exists, err := r.collectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCollectionNotFound
	}

	query := fmt.Sprintf(`SELECT DISTINCT symbol, stock_name FROM %q ORDER BY symbol`, collection)

	var symbols []model.Symbol
	if err := r.db.SelectContext(ctx, &symbols, query); err != nil {
		r.logger.Error("Failed to list symbols",
			zap.Error(err),
			zap.String("collection", collection))
		return nil, err
	}

	return symbols, nil
}

func (r *CollectionRepository) collectionExists(ctx context.Context, collection string) (bool, error) {
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, collection); err != nil {
		r.logger.Error("Failed to check collection",
			zap.Error(err),
			zap.String("collection", collection))
		return false, err
	}

	return count > 0, nil
}
