package payment

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
	"greenledger/internal/migrate"
)

func TestPostgres_AppendAndTotal(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	orderID := insertOrder(ctx, t, pool, "seller-1", "100.00")
	repo := NewPostgres(pool, log.New(io.Discard, "", 0))

	first := domain.Payment{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Amount:  decimal.RequireFromString("60.00"),
		Method:  domain.MethodCash,
		PaidAt:  time.Now().UTC(),
	}
	if _, err := repo.Append(ctx, "seller-1", first); err != nil {
		t.Fatalf("append first: %v", err)
	}

	second := first
	second.ID = uuid.NewString()
	second.Amount = decimal.RequireFromString("40.00")
	if _, err := repo.Append(ctx, "seller-1", second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	total, err := repo.TotalPaid(ctx, orderID)
	if err != nil {
		t.Fatalf("total paid: %v", err)
	}
	if total.String() != "100" {
		t.Fatalf("total = %s, want 100", total)
	}

	over := first
	over.ID = uuid.NewString()
	over.Amount = decimal.RequireFromString("0.01")
	if _, err := repo.Append(ctx, "seller-1", over); !errors.Is(err, domain.ErrOverpayment) {
		t.Fatalf("expected overpayment rejection, got %v", err)
	}

	payments, err := repo.ListByOrder(ctx, orderID, 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}
}

func TestPostgres_AppendUnknownOrder(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, log.New(io.Discard, "", 0))
	p := domain.Payment{
		ID:      uuid.NewString(),
		OrderID: "3f9d7a52-0000-0000-0000-000000000000",
		Amount:  decimal.RequireFromString("5.00"),
		Method:  domain.MethodCash,
		PaidAt:  time.Now().UTC(),
	}
	if _, err := repo.Append(ctx, "seller-1", p); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func insertOrder(ctx context.Context, t *testing.T, pool *pgxpool.Pool, sellerID, total string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO orders (id, seller_id, buyer_name, subtotal, total)
		VALUES (gen_random_uuid(), $1, 'Buyer', $2, $2)
		RETURNING id::text`, sellerID, total).Scan(&id)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
	return id
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE payments, order_lines, orders, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
