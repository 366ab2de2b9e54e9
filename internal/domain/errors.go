package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNoSuchTier indicates the requested weight break has no price slot.
	ErrNoSuchTier = errors.New("no such tier")
	// ErrOrderLocked indicates a mutation was attempted on a locked order.
	ErrOrderLocked = errors.New("order locked")
	// ErrOverpayment indicates a payment would exceed the balance due.
	ErrOverpayment = errors.New("overpayment rejected")
	// ErrInvalidQuantity indicates a non-positive line quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidAmount indicates a non-positive payment amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidMethod indicates an unrecognized payment method.
	ErrInvalidMethod = errors.New("invalid payment method")
	// ErrInvalidStatus indicates a status outside the nine-value enumeration.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidShipping indicates a negative shipping cost.
	ErrInvalidShipping = errors.New("shipping cost must not be negative")
	// ErrInvalidProduct indicates a product save with a missing name or an
	// unrecognized enum value.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrParExceedsOnHand indicates a product save with par level above on-hand.
	ErrParExceedsOnHand = errors.New("par level exceeds on-hand quantity")
	// ErrConflict indicates a stale-version write; the caller may retry.
	ErrConflict = errors.New("version conflict")
	// ErrDependency indicates an external collaborator failure; retryable.
	ErrDependency = errors.New("dependency failure")
)

// ErrorKind buckets sentinel errors for callers that map them to transport
// responses.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindInvariant
	KindNotFound
	KindConflict
	KindDependency
)

// Kind classifies err into one of the error kinds. Wrapped errors are
// matched via errors.Is.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidShipping),
		errors.Is(err, ErrInvalidProduct),
		errors.Is(err, ErrParExceedsOnHand):
		return KindValidation
	case errors.Is(err, ErrOrderLocked), errors.Is(err, ErrOverpayment):
		return KindInvariant
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoSuchTier):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDependency):
		return KindDependency
	default:
		return KindUnknown
	}
}
