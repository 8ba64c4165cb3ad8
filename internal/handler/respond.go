package handler

import (
	"errors"
	"net/http"

	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/pkg/response"
)

// writeError maps a service error onto an HTTP response. BusinessError codes
// carry the taxonomy; anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if !errors.As(err, &bizErr) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch bizErr.Code {
	case customError.ErrCodeCompanyNotFound,
		customError.ErrCodePaymentNotFound,
		customError.ErrCodeInvoiceNotFound,
		customError.ErrCodeUserNotFound:
		response.ErrorWithCode(w, http.StatusNotFound, bizErr.Code, bizErr.Message)
	case customError.ErrCodePaymentAlreadySettled:
		response.ErrorWithCode(w, http.StatusConflict, bizErr.Code, bizErr.Message)
	case customError.ErrCodeValidation, customError.ErrCodeEmailAlreadyExists:
		response.ErrorWithCode(w, http.StatusBadRequest, bizErr.Code, bizErr.Message)
	case customError.ErrCodeInvalidCredentials:
		response.ErrorWithCode(w, http.StatusUnauthorized, bizErr.Code, bizErr.Message)
	default:
		response.ErrorWithCode(w, http.StatusInternalServerError, bizErr.Code, bizErr.Message)
	}
}
