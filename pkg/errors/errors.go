package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrPaymentAlreadySettled = errors.New("payment is already settled")
	ErrEmailAlreadyExists    = errors.New("email is already in use")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrValidation            = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeCompanyNotFound       = "COMPANY_NOT_FOUND"
	ErrCodePaymentNotFound       = "PAYMENT_NOT_FOUND"
	ErrCodeInvoiceNotFound       = "INVOICE_NOT_FOUND"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodePaymentAlreadySettled = "PAYMENT_ALREADY_SETTLED"
	ErrCodeEmailAlreadyExists    = "EMAIL_ALREADY_EXISTS"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
	ErrCodeStorageError          = "STORAGE_ERROR"
)

// Wrap common errors with business context
func WrapCompanyNotFound(companyID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCompanyNotFound,
		fmt.Sprintf("Company with ID %s not found", companyID),
		ErrCompanyNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapInvoiceNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Invoice with ID %s not found", invoiceID),
		ErrInvoiceNotFound,
	)
}

func WrapPaymentAlreadySettled(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadySettled,
		fmt.Sprintf("Payment with ID %s is already settled", paymentID),
		ErrPaymentAlreadySettled,
	)
}

func WrapEmailAlreadyExists(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmailAlreadyExists,
		fmt.Sprintf("Email %s is already in use", email),
		ErrEmailAlreadyExists,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid email or password",
		ErrInvalidCredentials,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		message,
		ErrValidation,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

func WrapStorageError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStorageError,
		"file storage operation failed",
		err,
	)
}
