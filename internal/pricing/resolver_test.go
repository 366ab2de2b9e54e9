package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"greenledger/internal/domain"
)

func tieredFixture() domain.PricingDefinition {
	return domain.NewTieredPrice([7]decimal.Decimal{
		decimal.NewFromInt(5),
		decimal.NewFromInt(9),
		decimal.NewFromInt(16),
		decimal.NewFromInt(25),
		decimal.NewFromInt(45),
		decimal.NewFromInt(80),
		decimal.NewFromInt(150),
	})
}

func TestResolveTieredReturnsExactSlot(t *testing.T) {
	def := tieredFixture()
	expected := map[domain.WeightBreak]int64{
		domain.BreakHalfGram:  5,
		domain.BreakGram:      9,
		domain.BreakTwoGram:   16,
		domain.BreakEighth:    25,
		domain.BreakQuarter:   45,
		domain.BreakHalfOunce: 80,
		domain.BreakOunce:     150,
	}
	for tier, want := range expected {
		got, err := Resolve(def, tier)
		require.NoError(t, err, "tier %s", tier)
		require.True(t, got.Equal(decimal.NewFromInt(want)), "tier %s: got %s", tier, got)
	}
}

func TestResolveTieredUnknownBreak(t *testing.T) {
	def := tieredFixture()
	for _, tier := range []domain.WeightBreak{"4g", "", "0.5", "1oz"} {
		_, err := Resolve(def, tier)
		require.ErrorIs(t, err, domain.ErrNoSuchTier, "tier %q", tier)
	}
}

func TestResolveFlatIgnoresRequestedBreak(t *testing.T) {
	def := domain.NewFlatPrice(domain.EachOne, decimal.RequireFromString("25.00"))
	for _, tier := range []domain.WeightBreak{domain.BreakEighth, "", "whatever"} {
		got, err := Resolve(def, tier)
		require.NoError(t, err)
		require.True(t, got.Equal(decimal.RequireFromString("25.00")))
	}
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(domain.PricingDefinition{Kind: "subscription"}, domain.BreakGram)
	require.ErrorIs(t, err, domain.ErrNoSuchTier)
}

func TestApplyPresetOverwritesAllSlots(t *testing.T) {
	def := tieredFixture()
	require.NoError(t, ApplyPreset(&def, PresetShakeSale))

	want, err := Preset(PresetShakeSale)
	require.NoError(t, err)
	for i := range want {
		require.True(t, def.Slots[i].Equal(want[i]), "slot %d", i)
	}
	require.Equal(t, domain.PricingTiered, def.Kind)
}

func TestApplyPresetUnknownName(t *testing.T) {
	def := tieredFixture()
	before := def
	err := ApplyPreset(&def, "holidaySale")
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.Equal(t, before, def)
}
