package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a seller-owned catalog entry. Taxonomy (category, subcategory)
// is referenced by opaque id; the records themselves live with the catalog
// collaborator.
type Product struct {
	ID            string            `json:"id"`
	SellerID      string            `json:"-"`
	CategoryID    string            `json:"categoryId,omitempty"`
	SubcategoryID string            `json:"subcategoryId,omitempty"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku,omitempty"`
	TagNumber     string            `json:"tagNumber,omitempty"`
	Unit          MeasurementUnit   `json:"measurementUnit"`
	Pricing       PricingDefinition `json:"pricing"`
	DealPrice     decimal.Decimal   `json:"dealPrice"`
	OnHand        decimal.Decimal   `json:"onHand"`
	ParLevel      decimal.Decimal   `json:"parLevel"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ValidateStock rejects a save whose par level exceeds the on-hand quantity.
// Violating writes are refused, never clamped.
func (p Product) ValidateStock() error {
	if p.ParLevel.GreaterThan(p.OnHand) {
		return ErrParExceedsOnHand
	}
	return nil
}

// CloneInto copies every field of p except identity, SKU and tag number,
// which the caller regenerates or leaves blank.
func (p Product) CloneInto(newID string) Product {
	out := p
	out.ID = newID
	out.SKU = ""
	out.TagNumber = ""
	out.CreatedAt = time.Time{}
	out.UpdatedAt = time.Time{}
	return out
}
