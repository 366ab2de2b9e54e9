package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, seller_id::text, COALESCE(category_id, ''), COALESCE(subcategory_id, ''),
name, COALESCE(sku, ''), COALESCE(tag_number, ''), measurement_unit,
pricing_kind, COALESCE(each_value, ''), unit_price::text, deal_price::text,
slot_half_g::text, slot_1g::text, slot_2g::text, slot_3_5g::text,
slot_7g::text, slot_14g::text, slot_28g::text,
on_hand::text, par_level::text, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (
	id, seller_id, category_id, subcategory_id, name, sku, tag_number,
	measurement_unit, pricing_kind, each_value, unit_price, deal_price,
	slot_half_g, slot_1g, slot_2g, slot_3_5g, slot_7g, slot_14g, slot_28g,
	on_hand, par_level
)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''),
	$8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING ` + productColumns
	row := r.pool.QueryRow(ctx, q, productArgs(product)...)
	out, err := scanProduct(row)
	if err != nil {
		r.logger.Printf("product repo: create seller_id=%s name=%q error=%v", product.SellerID, product.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created seller_id=%s id=%s", out.SellerID, out.ID)
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products SET
	category_id = NULLIF($3, ''), subcategory_id = NULLIF($4, ''), name = $5,
	sku = NULLIF($6, ''), tag_number = NULLIF($7, ''), measurement_unit = $8,
	pricing_kind = $9, each_value = NULLIF($10, ''), unit_price = $11, deal_price = $12,
	slot_half_g = $13, slot_1g = $14, slot_2g = $15, slot_3_5g = $16,
	slot_7g = $17, slot_14g = $18, slot_28g = $19,
	on_hand = $20, par_level = $21, updated_at = now()
WHERE id = $1 AND seller_id = $2
RETURNING ` + productColumns
	row := r.pool.QueryRow(ctx, q, productArgs(product)...)
	out, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update seller_id=%s id=%s error=%v", product.SellerID, product.ID, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, sellerID, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 AND id = $2`
	out, err := scanProduct(r.pool.QueryRow(ctx, q, sellerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get seller_id=%s id=%s error=%v", sellerID, id, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + `
FROM products
WHERE seller_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, sellerID, limit, offset)
	if err != nil {
		r.logger.Printf("product repo: list seller_id=%s error=%v", sellerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows seller_id=%s error=%v", sellerID, err)
		return nil, err
	}
	return result, nil
}

func productArgs(p domain.Product) []interface{} {
	return []interface{}{
		p.ID,
		p.SellerID,
		p.CategoryID,
		p.SubcategoryID,
		p.Name,
		p.SKU,
		p.TagNumber,
		string(p.Unit),
		string(p.Pricing.Kind),
		string(p.Pricing.EachValue),
		p.Pricing.UnitPrice.String(),
		p.DealPrice.String(),
		p.Pricing.Slots[0].String(),
		p.Pricing.Slots[1].String(),
		p.Pricing.Slots[2].String(),
		p.Pricing.Slots[3].String(),
		p.Pricing.Slots[4].String(),
		p.Pricing.Slots[5].String(),
		p.Pricing.Slots[6].String(),
		p.OnHand.String(),
		p.ParLevel.String(),
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p                                  domain.Product
		unit, kind, each                   string
		unitPrice, dealPrice               string
		slots                              [7]string
		onHand, parLevel                   string
	)
	if err := row.Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.SubcategoryID,
		&p.Name, &p.SKU, &p.TagNumber, &unit,
		&kind, &each, &unitPrice, &dealPrice,
		&slots[0], &slots[1], &slots[2], &slots[3], &slots[4], &slots[5], &slots[6],
		&onHand, &parLevel, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Unit = domain.MeasurementUnit(unit)
	p.Pricing.Kind = domain.PricingKind(kind)
	p.Pricing.EachValue = domain.EachValue(each)

	var err error
	if p.Pricing.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return nil, err
	}
	if p.DealPrice, err = decimal.NewFromString(dealPrice); err != nil {
		return nil, err
	}
	for i, s := range slots {
		if p.Pricing.Slots[i], err = decimal.NewFromString(s); err != nil {
			return nil, err
		}
	}
	if p.OnHand, err = decimal.NewFromString(onHand); err != nil {
		return nil, err
	}
	if p.ParLevel, err = decimal.NewFromString(parLevel); err != nil {
		return nil, err
	}
	return &p, nil
}
