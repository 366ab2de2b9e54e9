package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed nine-value order lifecycle enumeration.
type OrderStatus int

const (
	StatusNewOrder OrderStatus = iota + 1
	StatusOpened
	StatusApproved
	StatusPending
	StatusProcessing
	StatusShipped
	StatusCanceled
	StatusCompleted
	StatusPOD
)

var statusLabels = map[OrderStatus]string{
	StatusNewOrder:   "New Order",
	StatusOpened:     "Opened",
	StatusApproved:   "Order Approved",
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusCanceled:   "Canceled",
	StatusCompleted:  "Completed",
	StatusPOD:        "POD",
}

// Valid reports whether s is one of the nine defined statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the fixed display label for s.
func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// BuyerInfo is the contact snapshot captured at order time. It is not
// live-linked to any customer record.
type BuyerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is one ordered product line. UnitPrice is frozen at the value the
// tier resolver returned when the line was created; later quantity edits
// recompute LineTotal only.
type LineItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Tier        WeightBreak     `json:"tier,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Order is the aggregate under contention: its lines, lock flag and derived
// totals mutate together under one version.
type Order struct {
	ID              string          `json:"id"`
	SellerID        string          `json:"-"`
	Buyer           BuyerInfo       `json:"buyer"`
	Lines           []LineItem      `json:"lineItems"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Status          OrderStatus     `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	SalesPersonID   *string         `json:"salesPersonId,omitempty"`
	SalesPersonName string          `json:"salesPersonName,omitempty"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	Locked          bool            `json:"locked"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ComputeTax returns the tax owed on the order. A tax rate is stored on the
// order but is not applied anywhere; the computed tax is always zero.
func (o Order) ComputeTax() decimal.Decimal {
	return decimal.Zero
}

// RecomputeTotals rederives subtotal, tax and total from the line items,
// shipping cost and commission. It is the single source of truth for Total;
// call it after every mutation to the line list, shipping cost or
// commission.
func (o *Order) RecomputeTotals() {
	subtotal := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].LineTotal = o.Lines[i].Quantity.Mul(o.Lines[i].UnitPrice)
		subtotal = subtotal.Add(o.Lines[i].LineTotal)
	}
	o.Subtotal = subtotal
	o.Tax = o.ComputeTax()
	o.Total = subtotal.Add(o.ShippingCost).Add(o.TotalCommission).Add(o.Tax)
	o.StatusLabel = o.Status.Label()
}

// LineByID returns the line with the given id, or nil.
func (o *Order) LineByID(lineID string) *LineItem {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// LineByProductTier returns the line matching product and tier, or nil.
// Flat-priced products carry an empty tier.
func (o *Order) LineByProductTier(productID string, tier WeightBreak) *LineItem {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID && o.Lines[i].Tier == tier {
			return &o.Lines[i]
		}
	}
	return nil
}
