package product

import (
	"context"

	"greenledger/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, sellerID, id string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, error)
}
