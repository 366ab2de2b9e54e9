package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodCreditCard   PaymentMethod = "creditCard"
	MethodBankTransfer PaymentMethod = "bankTransfer"
	MethodOther        PaymentMethod = "other"
)

// Valid reports whether m is one of the five recognized methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCheck, MethodCreditCard, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}

// Payment is one append-only ledger entry against an order. Payments are
// immutable once recorded; there is no edit or reversal operation.
type Payment struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	PaidAt    time.Time       `json:"paidAt"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BalanceDue is the order total minus the amount already paid. The value is
// not clamped; a non-positive balance reads as fully paid.
func BalanceDue(order Order, totalPaid decimal.Decimal) decimal.Decimal {
	return order.Total.Sub(totalPaid)
}
