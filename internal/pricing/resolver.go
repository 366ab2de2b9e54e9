// Package pricing resolves the unit price to freeze onto a new order line
// from a product's pricing definition.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

// Resolve returns the unit price for the requested weight break. It is a
// pure function with no side effects.
//
// Flat definitions price by their own "each" quantity; the requested break
// is ignored and the flat unit price is returned as-is. Tiered definitions
// require an exact match against one of the seven fixed breaks; there is no
// interpolation between breaks.
func Resolve(def domain.PricingDefinition, requested domain.WeightBreak) (decimal.Decimal, error) {
	switch def.Kind {
	case domain.PricingFlat:
		return def.UnitPrice, nil
	case domain.PricingTiered:
		idx, ok := requested.SlotIndex()
		if !ok {
			return decimal.Zero, fmt.Errorf("resolve %q: %w", requested, domain.ErrNoSuchTier)
		}
		return def.Slots[idx], nil
	default:
		return decimal.Zero, fmt.Errorf("resolve: unknown pricing kind %q: %w", def.Kind, domain.ErrNoSuchTier)
	}
}
