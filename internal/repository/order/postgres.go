package order

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

const orderColumns = `
id::text, seller_id::text, buyer_name, COALESCE(buyer_phone, ''),
COALESCE(buyer_email, ''), COALESCE(buyer_address, ''),
shipping_cost::text, tax_rate::text, status, sales_person_id::text,
COALESCE(sales_person_name, ''), total_commission::text, locked,
subtotal::text, tax::text, total::text, version, created_at, updated_at`

const lineColumns = `
id::text, order_id::text, product_id::text, product_name, COALESCE(tier, ''),
quantity::text, unit_price::text, line_total::text, created_at`

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (
	id, seller_id, buyer_name, buyer_phone, buyer_email, buyer_address,
	shipping_cost, tax_rate, status, sales_person_id, sales_person_name,
	total_commission, locked, subtotal, tax, total, version
)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
	$7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14, $15, $16, $17)
`
	if _, err := tx.Exec(ctx, q, orderArgs(order)...); err != nil {
		r.logger.Printf("order repo: create seller_id=%s error=%v", order.SellerID, err)
		return nil, err
	}
	if err := insertLines(ctx, tx, order.ID, order.Lines); err != nil {
		r.logger.Printf("order repo: create lines order_id=%s error=%v", order.ID, err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created seller_id=%s id=%s lines=%d", order.SellerID, order.ID, len(order.Lines))
	return r.GetByID(ctx, order.SellerID, order.ID)
}

func (r *postgresRepo) GetByID(ctx context.Context, sellerID, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE seller_id = $1 AND id = $2`
	order, err := scanOrder(r.pool.QueryRow(ctx, q, sellerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get seller_id=%s id=%s error=%v", sellerID, id, err)
		return nil, err
	}
	if order.Lines, err = r.fetchLines(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + `
FROM orders
WHERE seller_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, sellerID, limit, offset)
	if err != nil {
		r.logger.Printf("order repo: list seller_id=%s error=%v", sellerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if result[i].Lines, err = r.fetchLines(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) Save(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE orders SET
	buyer_name = $4, buyer_phone = NULLIF($5, ''), buyer_email = NULLIF($6, ''),
	buyer_address = NULLIF($7, ''), shipping_cost = $8, tax_rate = $9,
	status = $10, sales_person_id = $11, sales_person_name = NULLIF($12, ''),
	total_commission = $13, locked = $14, subtotal = $15, tax = $16,
	total = $17, version = version + 1, updated_at = now()
WHERE id = $1 AND seller_id = $2 AND version = $3
`
	args := append([]interface{}{order.ID, order.SellerID, order.Version}, orderArgs(order)[2:16]...)
	cmd, err := tx.Exec(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: save seller_id=%s id=%s error=%v", order.SellerID, order.ID, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		// Distinguish a missing order from a stale version.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1 AND seller_id = $2)`,
			order.ID, order.SellerID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: save conflict seller_id=%s id=%s version=%d", order.SellerID, order.ID, order.Version)
		return nil, domain.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, order.ID, order.Lines); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.SellerID, order.ID)
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	const q = `SELECT ` + lineColumns + `
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.LineItem
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

func insertLines(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.LineItem) error {
	const q = `
INSERT INTO order_lines (id, order_id, product_id, product_name, tier, quantity, unit_price, line_total, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, COALESCE($9, now()))
`
	for _, line := range lines {
		var createdAt interface{}
		if !line.CreatedAt.IsZero() {
			createdAt = line.CreatedAt
		}
		if _, err := tx.Exec(ctx, q,
			line.ID, orderID, line.ProductID, line.ProductName, string(line.Tier),
			line.Quantity.String(), line.UnitPrice.String(), line.LineTotal.String(), createdAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func orderArgs(o domain.Order) []interface{} {
	return []interface{}{
		o.ID,
		o.SellerID,
		o.Buyer.Name,
		o.Buyer.Phone,
		o.Buyer.Email,
		o.Buyer.Address,
		o.ShippingCost.String(),
		o.TaxRate.String(),
		int(o.Status),
		o.SalesPersonID,
		o.SalesPersonName,
		o.TotalCommission.String(),
		o.Locked,
		o.Subtotal.String(),
		o.Tax.String(),
		o.Total.String(),
		o.Version,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                         domain.Order
		shipping, taxRate, commission             string
		subtotal, tax, total                      string
		status                                    int
		salesPersonID                             *string
	)
	if err := row.Scan(
		&o.ID, &o.SellerID, &o.Buyer.Name, &o.Buyer.Phone, &o.Buyer.Email, &o.Buyer.Address,
		&shipping, &taxRate, &status, &salesPersonID, &o.SalesPersonName,
		&commission, &o.Locked, &subtotal, &tax, &total, &o.Version,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.StatusLabel = o.Status.Label()
	o.SalesPersonID = salesPersonID

	var err error
	if o.ShippingCost, err = decimal.NewFromString(shipping); err != nil {
		return nil, err
	}
	if o.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, err
	}
	if o.TotalCommission, err = decimal.NewFromString(commission); err != nil {
		return nil, err
	}
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if o.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanLine(row pgx.Row) (*domain.LineItem, error) {
	var (
		line                       domain.LineItem
		tier                       string
		quantity, unitPrice, total string
	)
	if err := row.Scan(
		&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &tier,
		&quantity, &unitPrice, &total, &line.CreatedAt,
	); err != nil {
		return nil, err
	}
	line.Tier = domain.WeightBreak(tier)

	var err error
	if line.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, err
	}
	if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return nil, err
	}
	if line.LineTotal, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	return &line, nil
}
