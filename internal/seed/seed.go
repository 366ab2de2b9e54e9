package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const demoSeller = "seller-demo"

type productSeed struct {
	ID        string
	Name      string
	SKU       string
	Unit      string
	Kind      string
	EachValue string
	UnitPrice string
	Slots     [7]string
	OnHand    string
	ParLevel  string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			ID:        "5f0c8a52-0d3e-4a41-9f5e-0b1a2c3d4e01",
			Name:      "Blue Dream Flower",
			SKU:       "SKU-BDF-001",
			Unit:      "gram",
			Kind:      "tiered",
			Slots:     [7]string{"5", "9", "16", "25", "45", "80", "150"},
			OnHand:    "500",
			ParLevel:  "100",
			UnitPrice: "0",
		},
		{
			ID:        "5f0c8a52-0d3e-4a41-9f5e-0b1a2c3d4e02",
			Name:      "Sour Shake",
			SKU:       "SKU-SSH-001",
			Unit:      "gram",
			Kind:      "tiered",
			Slots:     [7]string{"3", "5", "9", "15", "25", "45", "80"},
			OnHand:    "250",
			ParLevel:  "50",
			UnitPrice: "0",
		},
		{
			ID:        "5f0c8a52-0d3e-4a41-9f5e-0b1a2c3d4e03",
			Name:      "Fruit Punch Gummies",
			SKU:       "SKU-FPG-001",
			Unit:      "prePackage",
			Kind:      "flat",
			EachValue: "1",
			UnitPrice: "25.00",
			OnHand:    "120",
			ParLevel:  "24",
		},
		{
			ID:        "5f0c8a52-0d3e-4a41-9f5e-0b1a2c3d4e04",
			Name:      "Citrus Vape Cartridge",
			SKU:       "SKU-CVC-001",
			Unit:      "milliliter",
			Kind:      "flat",
			EachValue: "1/2",
			UnitPrice: "40.00",
			OnHand:    "60",
			ParLevel:  "12",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (
	id, seller_id, name, sku, measurement_unit, pricing_kind, each_value,
	unit_price, slot_half_g, slot_1g, slot_2g, slot_3_5g, slot_7g, slot_14g,
	slot_28g, on_hand, par_level
)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''),
	COALESCE(NULLIF($8, ''), '0')::numeric,
	COALESCE(NULLIF($9, ''), '0')::numeric, COALESCE(NULLIF($10, ''), '0')::numeric,
	COALESCE(NULLIF($11, ''), '0')::numeric, COALESCE(NULLIF($12, ''), '0')::numeric,
	COALESCE(NULLIF($13, ''), '0')::numeric, COALESCE(NULLIF($14, ''), '0')::numeric,
	COALESCE(NULLIF($15, ''), '0')::numeric, $16::numeric, $17::numeric)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	sku = EXCLUDED.sku,
	measurement_unit = EXCLUDED.measurement_unit,
	pricing_kind = EXCLUDED.pricing_kind,
	each_value = EXCLUDED.each_value,
	unit_price = EXCLUDED.unit_price,
	slot_half_g = EXCLUDED.slot_half_g,
	slot_1g = EXCLUDED.slot_1g,
	slot_2g = EXCLUDED.slot_2g,
	slot_3_5g = EXCLUDED.slot_3_5g,
	slot_7g = EXCLUDED.slot_7g,
	slot_14g = EXCLUDED.slot_14g,
	slot_28g = EXCLUDED.slot_28g,
	on_hand = EXCLUDED.on_hand,
	par_level = EXCLUDED.par_level,
	updated_at = now()
`
	_, err := pool.Exec(ctx, q,
		p.ID, demoSeller, p.Name, p.SKU, p.Unit, p.Kind, p.EachValue,
		p.UnitPrice,
		p.Slots[0], p.Slots[1], p.Slots[2], p.Slots[3], p.Slots[4], p.Slots[5], p.Slots[6],
		p.OnHand, p.ParLevel,
	)
	return err
}
