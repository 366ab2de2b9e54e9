package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"greenledger/internal/domain"
)

// errorBody names the invariant or validation that failed so clients never
// see a generic failure.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorCodes = map[error]string{
	domain.ErrNotFound:         "not_found",
	domain.ErrNoSuchTier:       "no_such_tier",
	domain.ErrOrderLocked:      "order_locked",
	domain.ErrOverpayment:      "overpayment_rejected",
	domain.ErrInvalidQuantity:  "invalid_quantity",
	domain.ErrInvalidAmount:    "invalid_amount",
	domain.ErrInvalidMethod:    "invalid_method",
	domain.ErrInvalidStatus:    "invalid_status",
	domain.ErrInvalidShipping:  "invalid_shipping",
	domain.ErrInvalidProduct:   "invalid_product",
	domain.ErrParExceedsOnHand: "par_exceeds_on_hand",
	domain.ErrConflict:         "version_conflict",
	domain.ErrDependency:       "dependency_failure",
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.Kind(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindInvariant, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindDependency:
		status = http.StatusBadGateway
	}

	code := "internal"
	for sentinel, name := range errorCodes {
		if errors.Is(err, sentinel) {
			code = name
			break
		}
	}
	c.JSON(status, gin.H{"error": errorBody{Code: code, Message: err.Error()}})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errorBody{Code: code, Message: message}})
}
