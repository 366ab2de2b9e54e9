package payment

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

const paymentColumns = `id::text, order_id::text, amount::text, method, paid_at, created_at`

func (r *postgresRepo) Append(ctx context.Context, sellerID string, p domain.Payment) (*domain.Payment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the owning order row; concurrent appends against the same order
	// serialize here, so the balance below is the committed one.
	var total string
	err = tx.QueryRow(ctx, `
SELECT total::text
FROM orders
WHERE id = $1 AND seller_id = $2
FOR UPDATE
`, p.OrderID, sellerID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	orderTotal, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}

	var paid string
	if err := tx.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0)::text
FROM payments
WHERE order_id = $1
`, p.OrderID).Scan(&paid); err != nil {
		return nil, err
	}
	totalPaid, err := decimal.NewFromString(paid)
	if err != nil {
		return nil, err
	}

	if p.Amount.GreaterThan(orderTotal.Sub(totalPaid)) {
		r.logger.Printf("payment repo: overpayment order_id=%s amount=%s balance=%s",
			p.OrderID, p.Amount, orderTotal.Sub(totalPaid))
		return nil, domain.ErrOverpayment
	}

	const q = `
INSERT INTO payments (id, order_id, amount, method, paid_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + paymentColumns
	out, err := scanPayment(tx.QueryRow(ctx, q, p.ID, p.OrderID, p.Amount.String(), string(p.Method), p.PaidAt))
	if err != nil {
		r.logger.Printf("payment repo: append order_id=%s error=%v", p.OrderID, err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("payment repo: appended order_id=%s id=%s amount=%s", out.OrderID, out.ID, out.Amount)
	return out, nil
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string, limit, offset int) ([]domain.Payment, error) {
	const q = `SELECT ` + paymentColumns + `
FROM payments
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, orderID, limit, offset)
	if err != nil {
		r.logger.Printf("payment repo: list order_id=%s error=%v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error) {
	var paid string
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0)::text
FROM payments
WHERE order_id = $1
`, orderID).Scan(&paid)
	if err != nil {
		r.logger.Printf("payment repo: total paid order_id=%s error=%v", orderID, err)
		return decimal.Zero, err
	}
	return decimal.NewFromString(paid)
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p      domain.Payment
		amount string
		method string
	)
	if err := row.Scan(&p.ID, &p.OrderID, &amount, &method, &p.PaidAt, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Method = domain.PaymentMethod(method)

	var err error
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &p, nil
}
