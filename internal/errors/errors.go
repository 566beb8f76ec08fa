package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidInput        ErrorCode = "invalid_input"
	InvalidAmount       ErrorCode = "invalid_amount"
	LimitsBreached      ErrorCode = "limits_breached"
	InsufficientBalance ErrorCode = "insufficient_balance"
	BalanceUnavailable  ErrorCode = "balance_unavailable"
	LedgerFailure       ErrorCode = "ledger_failure"
	PayoutFailure       ErrorCode = "payout_failure"
	ManualReconRequired ErrorCode = "manual_reconciliation_required"
	TransactionNotFound ErrorCode = "transaction_not_found"
	DuplicateReference  ErrorCode = "duplicate_reference"
	CancellationRefused ErrorCode = "cancellation_refused"
	StatusConflict      ErrorCode = "status_conflict"
	InternalError       ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps an error code to the response status the handlers use.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidInput, InvalidAmount, LimitsBreached:
		return http.StatusBadRequest
	case TransactionNotFound:
		return http.StatusNotFound
	case DuplicateReference, StatusConflict, CancellationRefused:
		return http.StatusConflict
	case InsufficientBalance, BalanceUnavailable:
		return http.StatusUnprocessableEntity
	case LedgerFailure, PayoutFailure, ManualReconRequired:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrTransactionNotFound      = NewAppError(TransactionNotFound, "transaction not found")
	ErrDuplicateReference       = NewAppError(DuplicateReference, "payment reference already exists")
	ErrCancellationRefused      = NewAppError(CancellationRefused, "transaction can no longer be cancelled")
	ErrStatusRegressionRejected = NewAppError(StatusConflict, "status update would regress persisted status")
)
