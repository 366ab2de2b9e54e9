// Package commission talks to the external rate service that owns the
// commission formula. This core only stores the figure it returns.
package commission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

// SalesPersonRef identifies a sales person in the external directory.
type SalesPersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RateService computes the commission owed on an order for a sales person.
type RateService interface {
	ComputeCommission(ctx context.Context, order domain.Order, ref SalesPersonRef) (decimal.Decimal, error)
}

// HTTPClient is the RateService implementation over the rate service's HTTP
// endpoint.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type computeRequest struct {
	OrderID       string `json:"orderId"`
	SellerID      string `json:"sellerId"`
	Subtotal      string `json:"subtotal"`
	SalesPersonID string `json:"salesPersonId"`
}

type computeResponse struct {
	Commission string `json:"commission"`
}

// ComputeCommission posts the order figures to the rate service. Any
// transport or decode failure surfaces as domain.ErrDependency so callers
// can treat it as retryable.
func (c *HTTPClient) ComputeCommission(ctx context.Context, order domain.Order, ref SalesPersonRef) (decimal.Decimal, error) {
	body, err := json.Marshal(computeRequest{
		OrderID:       order.ID,
		SellerID:      order.SellerID,
		Subtotal:      order.Subtotal.String(),
		SalesPersonID: ref.ID,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("commission: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/commissions/compute", bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("commission: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("commission: call rate service: %w: %v", domain.ErrDependency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("commission: rate service status %d: %w", resp.StatusCode, domain.ErrDependency)
	}

	var out computeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Zero, fmt.Errorf("commission: decode response: %w: %v", domain.ErrDependency, err)
	}
	amount, err := decimal.NewFromString(out.Commission)
	if err != nil {
		return decimal.Zero, fmt.Errorf("commission: parse %q: %w", out.Commission, domain.ErrDependency)
	}
	return amount, nil
}
