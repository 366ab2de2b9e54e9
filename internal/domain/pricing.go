package domain

import "github.com/shopspring/decimal"

// WeightBreak is one of the seven fixed weight quantities a tiered price can
// be set for. The set is closed; no interpolation between breaks exists.
type WeightBreak string

const (
	BreakHalfGram       WeightBreak = "0.5g"
	BreakGram           WeightBreak = "1g"
	BreakTwoGram        WeightBreak = "2g"
	BreakEighth         WeightBreak = "3.5g"
	BreakQuarter        WeightBreak = "7g"
	BreakHalfOunce      WeightBreak = "14g"
	BreakOunce          WeightBreak = "28g"
	weightBreakSlotSize             = 7
)

// WeightBreaks fixes the slot order for TieredPrice. Slot i of a tiered
// definition prices WeightBreaks[i].
var WeightBreaks = [weightBreakSlotSize]WeightBreak{
	BreakHalfGram,
	BreakGram,
	BreakTwoGram,
	BreakEighth,
	BreakQuarter,
	BreakHalfOunce,
	BreakOunce,
}

// SlotIndex returns the slot position of w in WeightBreaks.
func (w WeightBreak) SlotIndex() (int, bool) {
	for i, b := range WeightBreaks {
		if b == w {
			return i, true
		}
	}
	return 0, false
}

// MeasurementUnit is the unit a product is counted or weighed in.
type MeasurementUnit string

const (
	UnitEach       MeasurementUnit = "unit"
	UnitPrePackage MeasurementUnit = "prePackage"
	UnitPound      MeasurementUnit = "pound"
	UnitOunce      MeasurementUnit = "ounce"
	UnitKilogram   MeasurementUnit = "kilogram"
	UnitMilligram  MeasurementUnit = "milligram"
	UnitGram       MeasurementUnit = "gram"
	UnitMilliliter MeasurementUnit = "milliliter"
	UnitLiter      MeasurementUnit = "liter"
)

// Valid reports whether u is a member of the closed unit enumeration.
func (u MeasurementUnit) Valid() bool {
	switch u {
	case UnitEach, UnitPrePackage, UnitPound, UnitOunce, UnitKilogram,
		UnitMilligram, UnitGram, UnitMilliliter, UnitLiter:
		return true
	}
	return false
}

// EachValue is the "each" fraction a flat price is quoted for.
type EachValue string

const (
	EachTenth      EachValue = "1/10"
	EachEighth     EachValue = "1/8"
	EachQuarter    EachValue = "1/4"
	EachHalf       EachValue = "1/2"
	EachOne        EachValue = "1"
	EachTwo        EachValue = "2"
	EachThreeHalf  EachValue = "3.5"
	EachSeven      EachValue = "7"
	EachFourteen   EachValue = "14"
	EachTwentyEight EachValue = "28"
)

// Valid reports whether e is a member of the closed each-value enumeration.
func (e EachValue) Valid() bool {
	switch e {
	case EachTenth, EachEighth, EachQuarter, EachHalf, EachOne, EachTwo,
		EachThreeHalf, EachSeven, EachFourteen, EachTwentyEight:
		return true
	}
	return false
}

// PricingKind tags the PricingDefinition variant.
type PricingKind string

const (
	PricingFlat   PricingKind = "flat"
	PricingTiered PricingKind = "tiered"
)

// PricingDefinition is the tagged variant a product prices itself with:
// either a single flat price for a defined "each" quantity, or seven
// independently set slot prices, one per weight break.
type PricingDefinition struct {
	Kind PricingKind `json:"kind"`

	// Flat variant.
	EachValue EachValue       `json:"eachValue,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// Tiered variant. Slots[i] prices WeightBreaks[i].
	Slots [weightBreakSlotSize]decimal.Decimal `json:"slots"`
}

// NewFlatPrice builds a flat pricing definition.
func NewFlatPrice(each EachValue, unitPrice decimal.Decimal) PricingDefinition {
	return PricingDefinition{Kind: PricingFlat, EachValue: each, UnitPrice: unitPrice}
}

// NewTieredPrice builds a tiered pricing definition from seven slot prices
// in WeightBreaks order.
func NewTieredPrice(slots [weightBreakSlotSize]decimal.Decimal) PricingDefinition {
	return PricingDefinition{Kind: PricingTiered, Slots: slots}
}
