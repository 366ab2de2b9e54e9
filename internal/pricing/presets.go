package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

// PresetName identifies a named tier preset.
type PresetName string

const (
	PresetShakeSale   PresetName = "shakeSale"
	PresetFlowerPrice PresetName = "flowerPrice"
)

// presetSlots holds the slot prices a preset writes, in domain.WeightBreaks
// order (0.5g, 1g, 2g, 3.5g, 7g, 14g, 28g).
var presetSlots = map[PresetName][7]decimal.Decimal{
	PresetShakeSale: {
		decimal.NewFromInt(3),
		decimal.NewFromInt(5),
		decimal.NewFromInt(9),
		decimal.NewFromInt(15),
		decimal.NewFromInt(25),
		decimal.NewFromInt(45),
		decimal.NewFromInt(80),
	},
	PresetFlowerPrice: {
		decimal.NewFromInt(5),
		decimal.NewFromInt(9),
		decimal.NewFromInt(16),
		decimal.NewFromInt(25),
		decimal.NewFromInt(45),
		decimal.NewFromInt(80),
		decimal.NewFromInt(150),
	},
}

// Preset returns the seven slot prices of a named preset.
func Preset(name PresetName) ([7]decimal.Decimal, error) {
	slots, ok := presetSlots[name]
	if !ok {
		return [7]decimal.Decimal{}, fmt.Errorf("preset %q: %w", name, domain.ErrNotFound)
	}
	return slots, nil
}

// ApplyPreset overwrites all seven slots of def with the named preset and
// marks the definition tiered. Slots are replaced atomically, never merged.
func ApplyPreset(def *domain.PricingDefinition, name PresetName) error {
	slots, err := Preset(name)
	if err != nil {
		return err
	}
	def.Kind = domain.PricingTiered
	def.Slots = slots
	return nil
}
