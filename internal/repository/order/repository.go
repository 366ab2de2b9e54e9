package order

import (
	"context"

	"greenledger/internal/domain"
)

type Repository interface {
	// Create inserts the order and its lines in one transaction.
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, sellerID, id string) (*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Order, error)
	// Save writes the full order state guarded by its version: the update
	// matches the version the order was read at and bumps it by one. A
	// stale version fails with domain.ErrConflict. Lines are replaced
	// wholesale inside the same transaction.
	Save(ctx context.Context, order domain.Order) (*domain.Order, error)
}
