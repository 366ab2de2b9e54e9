// Package product implements seller catalog writes: create, edit, clone and
// the inventory quick-edit, all guarded by the par-level invariant.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
	productrepo "greenledger/internal/repository/product"
)

type repo interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, sellerID, id string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, error)
}

type Service struct {
	repo  repo
	newID func() string
}

func New(r productrepo.Repository) *Service {
	return &Service{repo: r, newID: uuid.NewString}
}

func (s *Service) Create(ctx context.Context, sellerID string, p domain.Product) (*domain.Product, error) {
	p.ID = s.newID()
	p.SellerID = sellerID
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, sellerID string, p domain.Product) (*domain.Product, error) {
	p.SellerID = sellerID
	if _, err := s.repo.GetByID(ctx, sellerID, p.ID); err != nil {
		return nil, err
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

// Clone copies the product under a fresh identity with SKU and tag number
// left blank for the seller to fill in.
func (s *Service) Clone(ctx context.Context, sellerID, productID string) (*domain.Product, error) {
	src, err := s.repo.GetByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, src.CloneInto(s.newID()))
}

// QuickEdit is the inventory-weight quick edit: price, deal price, par level
// and on-hand only. Nil fields keep their stored values.
type QuickEdit struct {
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	DealPrice *decimal.Decimal `json:"dealPrice,omitempty"`
	ParLevel  *decimal.Decimal `json:"parLevel,omitempty"`
	OnHand    *decimal.Decimal `json:"onHand,omitempty"`
}

func (s *Service) QuickEdit(ctx context.Context, sellerID, productID string, edit QuickEdit) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if edit.UnitPrice != nil {
		p.Pricing.UnitPrice = *edit.UnitPrice
	}
	if edit.DealPrice != nil {
		p.DealPrice = *edit.DealPrice
	}
	if edit.ParLevel != nil {
		p.ParLevel = *edit.ParLevel
	}
	if edit.OnHand != nil {
		p.OnHand = *edit.OnHand
	}
	if err := p.ValidateStock(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, *p)
}

func (s *Service) Get(ctx context.Context, sellerID, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, sellerID, id)
}

func (s *Service) List(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerID, limit, offset)
}

func validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name required: %w", domain.ErrInvalidProduct)
	}
	if !p.Unit.Valid() {
		return fmt.Errorf("measurement unit %q not recognized: %w", p.Unit, domain.ErrInvalidProduct)
	}
	switch p.Pricing.Kind {
	case domain.PricingFlat:
		if !p.Pricing.EachValue.Valid() {
			return fmt.Errorf("each value %q not recognized: %w", p.Pricing.EachValue, domain.ErrInvalidProduct)
		}
	case domain.PricingTiered:
	default:
		return fmt.Errorf("pricing kind %q not recognized: %w", p.Pricing.Kind, domain.ErrInvalidProduct)
	}
	return p.ValidateStock()
}
