package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

type Repository interface {
	// Append records the payment after re-checking the balance due under a
	// row lock on the owning order, so two concurrent payments cannot each
	// pass the check and jointly overpay. Fails with domain.ErrOverpayment
	// when amount exceeds the balance at commit time.
	Append(ctx context.Context, sellerID string, p domain.Payment) (*domain.Payment, error)
	ListByOrder(ctx context.Context, orderID string, limit, offset int) ([]domain.Payment, error)
	TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error)
}
