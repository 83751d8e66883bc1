package hyperliquid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDecimal indicates a string that is not a plain decimal number.
	ErrInvalidDecimal = errors.New("hyperliquid: invalid decimal")
	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("hyperliquid: division by zero")
	// ErrInvalidFormat indicates a price or size not expressed as a plain decimal string.
	ErrInvalidFormat = errors.New("hyperliquid: invalid number format")
	// ErrTooSmall indicates a value that truncates to zero under the venue's precision rules.
	ErrTooSmall = errors.New("hyperliquid: value too small for precision")
	// ErrInvalidPercent indicates an equity fraction outside (0, 1].
	ErrInvalidPercent = errors.New("hyperliquid: percent must be in (0, 1]")
	// ErrNoCollateral indicates an account with no usable equity for percent sizing.
	ErrNoCollateral = errors.New("hyperliquid: account has no collateral")
)

// Rejection codes classify venue order rejections for callers.
const (
	CodeOrderMinValue      = "ORDER_MIN_VALUE"
	CodeInsufficientMargin = "INSUFFICIENT_MARGIN"
	CodePostOnlyRejected   = "POST_ONLY_REJECTED"
	CodeIocRejected        = "IOC_REJECTED"
	CodeBadTriggerPrice    = "BAD_TRIGGER_PRICE"
	CodeInstantOrderFailed = "INSTANT_ORDER_FAILED"
)

// RejectError is an application-level rejection from the venue. It is never
// retried by the transport layer; engines decide per code.
type RejectError struct {
	Code    string
	Message string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("hyperliquid: order rejected [%s]: %s", e.Code, e.Message)
}

// Retryable reports whether replacing the order at a fresh price may succeed.
func (e *RejectError) Retryable() bool {
	switch e.Code {
	case CodePostOnlyRejected, CodeIocRejected:
		return true
	default:
		return false
	}
}

// classifyRejection maps a venue rejection message to a RejectError.
func classifyRejection(message string) *RejectError {
	lower := strings.ToLower(message)
	code := CodeInstantOrderFailed
	switch {
	case strings.Contains(lower, "minimum value"):
		code = CodeOrderMinValue
	case strings.Contains(lower, "insufficient margin"):
		code = CodeInsufficientMargin
	case strings.Contains(lower, "post only"):
		code = CodePostOnlyRejected
	case strings.Contains(lower, "ioc"):
		code = CodeIocRejected
	case strings.Contains(lower, "trigger"):
		code = CodeBadTriggerPrice
	}
	return &RejectError{Code: code, Message: message}
}
