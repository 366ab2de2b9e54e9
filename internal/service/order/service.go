// Package order implements the order lifecycle: line-item edits with frozen
// prices, status transitions and locking, the append-only payment ledger and
// sales-commission assignment. Every mutation goes through this service so
// totals recompute and invariant checks happen together.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"greenledger/internal/commission"
	"greenledger/internal/domain"
	"greenledger/internal/pricing"
)

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, sellerID, id string) (*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Order, error)
	Save(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type productRepo interface {
	GetByID(ctx context.Context, sellerID, id string) (*domain.Product, error)
}

type paymentRepo interface {
	Append(ctx context.Context, sellerID string, p domain.Payment) (*domain.Payment, error)
	ListByOrder(ctx context.Context, orderID string, limit, offset int) ([]domain.Payment, error)
	TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error)
}

type Service struct {
	repo        orderRepo
	productRepo productRepo
	payments    paymentRepo
	rates       commission.RateService
	newID       func() string
	now         func() time.Time
}

func New(repo orderRepo, productRepo productRepo, payments paymentRepo, rates commission.RateService) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		payments:    payments,
		rates:       rates,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// LineRequest asks for one line on a new order. Tier is required for
// tier-priced products and ignored for flat-priced ones.
type LineRequest struct {
	ProductID string             `json:"productId"`
	Tier      domain.WeightBreak `json:"tier,omitempty"`
	Quantity  decimal.Decimal    `json:"quantity"`
}

// Create builds a new order for the seller: each requested line resolves its
// unit price once and freezes it, totals are recomputed, and the order
// starts as New Order, unlocked, version 1.
func (s *Service) Create(ctx context.Context, sellerID string, buyer domain.BuyerInfo, lines []LineRequest) (*domain.Order, error) {
	order := domain.Order{
		ID:       s.newID(),
		SellerID: sellerID,
		Buyer:    buyer,
		Status:   domain.StatusNewOrder,
		Version:  1,
	}
	for _, req := range lines {
		if !req.Quantity.IsPositive() {
			return nil, fmt.Errorf("line product %s: %w", req.ProductID, domain.ErrInvalidQuantity)
		}
		product, err := s.productRepo.GetByID(ctx, sellerID, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("line product %s: %w", req.ProductID, err)
		}
		unitPrice, err := pricing.Resolve(product.Pricing, req.Tier)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, domain.LineItem{
			ID:          s.newID(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Tier:        lineTier(product.Pricing, req.Tier),
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
		})
	}
	order.RecomputeTotals()
	return s.repo.Create(ctx, order)
}

// Clone copies an order into a fresh one: new identity, the same lines with
// their frozen prices, status reset to New Order, unlocked, no payments.
func (s *Service) Clone(ctx context.Context, sellerID, orderID string) (*domain.Order, error) {
	src, err := s.repo.GetByID(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	clone := *src
	clone.ID = s.newID()
	clone.Status = domain.StatusNewOrder
	clone.Locked = false
	clone.Version = 1
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	clone.Lines = make([]domain.LineItem, len(src.Lines))
	for i, line := range src.Lines {
		line.ID = s.newID()
		line.OrderID = clone.ID
		line.CreatedAt = time.Time{}
		clone.Lines[i] = line
	}
	clone.RecomputeTotals()
	return s.repo.Create(ctx, clone)
}

func (s *Service) Get(ctx context.Context, sellerID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, sellerID, orderID)
}

func (s *Service) List(ctx context.Context, sellerID string, limit, offset int) ([]domain.Order, error) {
	return s.repo.ListBySeller(ctx, sellerID, limit, offset)
}

// AddOrUpdateLine adds a line, resolving and freezing its unit price, or
// sets the quantity of an existing product+tier line. An existing line never
// re-resolves its price; only the extended total is recomputed.
func (s *Service) AddOrUpdateLine(ctx context.Context, sellerID, orderID, productID string, tier domain.WeightBreak, quantity decimal.Decimal) (*domain.Order, error) {
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	order, err := s.mutableOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	// Flat-priced lines are stored tierless, so the match key has to be
	// normalized the same way the line was when it was added.
	tier = lineTier(product.Pricing, tier)

	if line := order.LineByProductTier(productID, tier); line != nil {
		line.Quantity = quantity
	} else {
		unitPrice, err := pricing.Resolve(product.Pricing, tier)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, domain.LineItem{
			ID:          s.newID(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Tier:        tier,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}
	order.RecomputeTotals()
	return s.repo.Save(ctx, *order)
}

// RemoveLine drops a line during an edit session.
func (s *Service) RemoveLine(ctx context.Context, sellerID, orderID, lineID string) (*domain.Order, error) {
	order, err := s.mutableOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	kept := order.Lines[:0]
	found := false
	for _, line := range order.Lines {
		if line.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	order.Lines = kept
	order.RecomputeTotals()
	return s.repo.Save(ctx, *order)
}

// SetShippingCost changes the shipping fee and recomputes totals.
func (s *Service) SetShippingCost(ctx context.Context, sellerID, orderID string, cost decimal.Decimal) (*domain.Order, error) {
	if cost.IsNegative() {
		return nil, domain.ErrInvalidShipping
	}
	order, err := s.mutableOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	order.ShippingCost = cost
	order.RecomputeTotals()
	return s.repo.Save(ctx, *order)
}

// Transition moves the order to newStatus. Any status may follow any other;
// the only hard rule is that a locked order accepts no transition.
func (s *Service) Transition(ctx context.Context, sellerID, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	order, err := s.mutableOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	order.Status = newStatus
	order.RecomputeTotals()
	return s.repo.Save(ctx, *order)
}

// Lock freezes the order one-way: afterwards line edits, shipping changes,
// transitions and reassignment all fail with ErrOrderLocked. Payments stay
// unaffected. Locking a locked order is a no-op success.
func (s *Service) Lock(ctx context.Context, sellerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Locked {
		return order, nil
	}
	order.Locked = true
	return s.repo.Save(ctx, *order)
}

// AssignSalesPerson binds the sales person and refreshes the cached
// commission from the rate service. A rate-service failure leaves the order
// unchanged.
func (s *Service) AssignSalesPerson(ctx context.Context, sellerID, orderID string, ref commission.SalesPersonRef) (*domain.Order, error) {
	order, err := s.mutableOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	amount, err := s.rates.ComputeCommission(ctx, *order, ref)
	if err != nil {
		return nil, err
	}
	id := ref.ID
	order.SalesPersonID = &id
	order.SalesPersonName = ref.Name
	order.TotalCommission = amount
	order.RecomputeTotals()
	return s.repo.Save(ctx, *order)
}

// ApplyPayment validates and appends a payment. The balance-due check runs
// inside the payment repository under the order's row lock, so it observes
// the balance as of commit, not as of read. Lock state does not gate
// payments.
func (s *Service) ApplyPayment(ctx context.Context, sellerID, orderID string, amount decimal.Decimal, method domain.PaymentMethod, paidAt time.Time) (*domain.Payment, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("method %q: %w", method, domain.ErrInvalidMethod)
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.repo.GetByID(ctx, sellerID, orderID); err != nil {
		return nil, err
	}
	if paidAt.IsZero() {
		paidAt = s.now()
	}
	return s.payments.Append(ctx, sellerID, domain.Payment{
		ID:      s.newID(),
		OrderID: orderID,
		Amount:  amount,
		Method:  method,
		PaidAt:  paidAt,
	})
}

func (s *Service) Payments(ctx context.Context, sellerID, orderID string, limit, offset int) ([]domain.Payment, error) {
	if _, err := s.repo.GetByID(ctx, sellerID, orderID); err != nil {
		return nil, err
	}
	return s.payments.ListByOrder(ctx, orderID, limit, offset)
}

func (s *Service) TotalPaid(ctx context.Context, sellerID, orderID string) (decimal.Decimal, error) {
	if _, err := s.repo.GetByID(ctx, sellerID, orderID); err != nil {
		return decimal.Zero, err
	}
	return s.payments.TotalPaid(ctx, orderID)
}

// BalanceDue is order total minus total paid, unclamped; display layers
// interpret a non-positive value as fully paid.
func (s *Service) BalanceDue(ctx context.Context, sellerID, orderID string) (decimal.Decimal, error) {
	order, err := s.repo.GetByID(ctx, sellerID, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.payments.TotalPaid(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.BalanceDue(*order, paid), nil
}

func (s *Service) mutableOrder(ctx context.Context, sellerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Locked {
		return nil, domain.ErrOrderLocked
	}
	return order, nil
}

// lineTier keeps flat-priced lines tierless so later edits address them by
// product id alone.
func lineTier(def domain.PricingDefinition, requested domain.WeightBreak) domain.WeightBreak {
	if def.Kind == domain.PricingFlat {
		return ""
	}
	return requested
}
