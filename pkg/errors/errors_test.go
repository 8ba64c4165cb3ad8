package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBusinessError(ErrCodeDatabaseError, "query failed", cause)

	assert.Equal(t, "DATABASE_ERROR: query failed (connection refused)", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewBusinessError(ErrCodeValidation, "bad input", nil)
	assert.Equal(t, "VALIDATION_ERROR: bad input", bare.Error())
}

func TestWrapHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      *BusinessError
		code     string
		sentinel error
	}{
		{"company not found", WrapCompanyNotFound("abc"), ErrCodeCompanyNotFound, ErrCompanyNotFound},
		{"payment not found", WrapPaymentNotFound("abc"), ErrCodePaymentNotFound, ErrPaymentNotFound},
		{"invoice not found", WrapInvoiceNotFound("abc"), ErrCodeInvoiceNotFound, ErrInvoiceNotFound},
		{"already settled", WrapPaymentAlreadySettled("abc"), ErrCodePaymentAlreadySettled, ErrPaymentAlreadySettled},
		{"email exists", WrapEmailAlreadyExists("a@b.com"), ErrCodeEmailAlreadyExists, ErrEmailAlreadyExists},
		{"invalid credentials", WrapInvalidCredentials(), ErrCodeInvalidCredentials, ErrInvalidCredentials},
		{"validation", WrapValidation("amount must not be negative"), ErrCodeValidation, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestWrapInfrastructureErrors(t *testing.T) {
	cause := errors.New("i/o timeout")

	assert.Equal(t, ErrCodeDatabaseError, WrapDatabaseError(cause).Code)
	assert.ErrorIs(t, WrapDatabaseError(cause), cause)

	assert.Equal(t, ErrCodeCacheError, WrapCacheError(cause).Code)
	assert.ErrorIs(t, WrapCacheError(cause), cause)

	assert.Equal(t, ErrCodeStorageError, WrapStorageError(cause).Code)
	assert.ErrorIs(t, WrapStorageError(cause), cause)
}
