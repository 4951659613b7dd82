package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInvalidAmount       = 4002
	CodeCartEmpty           = 4010
	CodeProductUnavailable  = 4011
	CodeDeliveryUnavailable = 4012
	CodeInsufficientFunds   = 4013
	CodeNotVerified         = 4030
	CodeUserNotFound        = 4040
	CodeDuplicateOrder      = 4090

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeOrderCommitFailed = 5001
)

// Base error types
var (
	// ErrValidation is returned when a request field is missing or malformed
	ErrValidation = errors.New("invalid request")

	// ErrInvalidAmount is returned when a monetary amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrCartEmpty is returned when order finalization finds no cart items
	ErrCartEmpty = errors.New("cart is empty")

	// ErrNotVerified is returned when an unverified account attempts to order
	ErrNotVerified = errors.New("account is not verified")

	// ErrProductUnavailable is returned when a cart line references a removed
	// or deactivated product at finalization time
	ErrProductUnavailable = errors.New("product is unavailable")

	// ErrDeliveryUnavailable is returned when no delivery price is configured
	// for the destination city
	ErrDeliveryUnavailable = errors.New("delivery is unavailable for this city")

	// ErrInsufficientFunds is returned when the balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOrderCommitFailed is returned when the finalization transaction
	// could not be applied; the cart and balance are left untouched
	ErrOrderCommitFailed = errors.New("order commit failed")

	// ErrDuplicateReferralBonus is returned when a bonus for the same
	// (referrer, referred) pair already exists
	ErrDuplicateReferralBonus = errors.New("referral bonus already granted")

	// ErrDuplicateOrder is returned when an idempotency key was already used
	ErrDuplicateOrder = errors.New("order with this idempotency key already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound is returned when the requested product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrCartItemNotFound is returned when the requested cart line doesn't exist
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrCartEmpty):
		return CodeCartEmpty
	case errors.Is(err, ErrProductUnavailable):
		return CodeProductUnavailable
	case errors.Is(err, ErrDeliveryUnavailable):
		return CodeDeliveryUnavailable
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrNotVerified):
		return CodeNotVerified
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDuplicateOrder):
		return CodeDuplicateOrder
	case errors.Is(err, ErrOrderCommitFailed):
		return CodeOrderCommitFailed
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a failed debit
type InsufficientFundsError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, amount, currentBalance string) error {
	return &InsufficientFundsError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// OrderError represents an error raised during order finalization
type OrderError struct {
	UserID         uint64
	IdempotencyKey string
	Total          string
	Reason         string
	Err            error
}

// Error implements the error interface for OrderError
func (e *OrderError) Error() string {
	return fmt.Sprintf("order finalization failed for user %d (total: %s): %s - %v",
		e.UserID, e.Total, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *OrderError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *OrderError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "order_error",
		"user_id":         e.UserID,
		"idempotency_key": e.IdempotencyKey,
		"total":           e.Total,
		"reason":          e.Reason,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewOrderError creates a detailed order finalization error
func NewOrderError(userID uint64, idempotencyKey, total, reason string, err error) error {
	return &OrderError{
		UserID:         userID,
		IdempotencyKey: idempotencyKey,
		Total:          total,
		Reason:         reason,
		Err:            err,
	}
}

// DuplicateReferralBonusError provides detailed information about a repeated grant
type DuplicateReferralBonusError struct {
	ReferrerID uint64
	ReferredID uint64
}

// Error implements the error interface
func (e *DuplicateReferralBonusError) Error() string {
	return fmt.Sprintf("referral bonus already granted: referrer=%d referred=%d",
		e.ReferrerID, e.ReferredID)
}

// Is checks if the target error is an ErrDuplicateReferralBonus
func (e *DuplicateReferralBonusError) Is(target error) bool {
	return target == ErrDuplicateReferralBonus
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateReferralBonusError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "duplicate_referral_bonus",
		"referrer_id": e.ReferrerID,
		"referred_id": e.ReferredID,
	}
}

// NewDuplicateReferralBonusError creates a new detailed duplicate grant error
func NewDuplicateReferralBonusError(referrerID, referredID uint64) error {
	return &DuplicateReferralBonusError{
		ReferrerID: referrerID,
		ReferredID: referredID,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsDuplicateReferralBonusError checks if the error is a duplicate bonus grant
func IsDuplicateReferralBonusError(err error) bool {
	return errors.Is(err, ErrDuplicateReferralBonus)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCartItemNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsNotVerifiedError checks if the error is the verification gate
func IsNotVerifiedError(err error) bool {
	return errors.Is(err, ErrNotVerified)
}

// IsRecoverableOrderError reports whether the caller can fix the request and
// retry: bad fields, empty cart, unavailable product or delivery, insufficient funds
func IsRecoverableOrderError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrCartEmpty) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrDeliveryUnavailable) ||
		errors.Is(err, ErrInsufficientFunds)
}
