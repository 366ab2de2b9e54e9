package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"greenledger/internal/domain"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{domain.ErrInvalidMethod, http.StatusBadRequest, "invalid_method"},
		{domain.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
		{domain.ErrInvalidProduct, http.StatusBadRequest, "invalid_product"},
		{domain.ErrParExceedsOnHand, http.StatusBadRequest, "par_exceeds_on_hand"},
		{domain.ErrOrderLocked, http.StatusConflict, "order_locked"},
		{domain.ErrOverpayment, http.StatusConflict, "overpayment_rejected"},
		{domain.ErrConflict, http.StatusConflict, "version_conflict"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrNoSuchTier, http.StatusNotFound, "no_such_tier"},
		{domain.ErrDependency, http.StatusBadGateway, "dependency_failure"},
		{fmt.Errorf("something odd"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		respondError(c, fmt.Errorf("op failed: %w", tc.err))

		if rec.Code != tc.status {
			t.Fatalf("%v: status %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body struct {
			Error errorBody `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if body.Error.Code != tc.code {
			t.Fatalf("%v: code %q, want %q", tc.err, body.Error.Code, tc.code)
		}
	}
}
