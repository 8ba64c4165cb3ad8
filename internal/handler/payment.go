package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/service"
	"github.com/akmanlar/rentroll/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validator.New(),
	}
}

// List handles GET /api/v1/payments with companyId/status/type filters.
// Tenant tokens are always scoped to their own company.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.buildFilter(w, r)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, payments)
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid payment request", err)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, payment)
}

// Get handles GET /api/v1/payments/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID", err)
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.authorizePayment(w, r, payment) {
		return
	}

	response.Success(w, payment)
}

// Settle handles PUT /api/v1/payments/{id}/pay
func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID", err)
		return
	}

	var request domain.SettlePaymentRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			response.BadRequest(w, "Invalid request body", err)
			return
		}
		if err := h.validator.Struct(&request); err != nil {
			response.BadRequest(w, "Invalid settlement request", err)
			return
		}
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !h.authorizePayment(w, r, payment) {
		return
	}

	settled, err := h.service.SettlePayment(r.Context(), id, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, settled)
}

// buildFilter assembles the listing filter from query parameters, enforcing
// tenant scoping. Returns false after writing a response on bad input.
func (h *PaymentHandler) buildFilter(w http.ResponseWriter, r *http.Request) (domain.PaymentFilter, bool) {
	var filter domain.PaymentFilter

	if raw := r.URL.Query().Get("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid companyId filter", err)
			return filter, false
		}
		filter.CompanyID = &id
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.PaymentStatus(raw)
		if !status.Valid() {
			response.BadRequest(w, "Invalid status filter", nil)
			return filter, false
		}
		filter.Status = status
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		paymentType := domain.PaymentType(raw)
		if !paymentType.Valid() {
			response.BadRequest(w, "Invalid type filter", nil)
			return filter, false
		}
		filter.Type = paymentType
	}

	claims := ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == domain.RoleTenant {
		companyID, err := claims.TenantCompanyID()
		if err != nil {
			response.Forbidden(w, "Tenant account is not linked to a company")
			return filter, false
		}
		if filter.CompanyID != nil && *filter.CompanyID != companyID {
			response.Forbidden(w, "Cannot view another company's payments")
			return filter, false
		}
		filter.CompanyID = &companyID
	}

	return filter, true
}

// authorizePayment rejects tenant access to payments owned by another
// company. Returns false after writing a response on denial.
func (h *PaymentHandler) authorizePayment(w http.ResponseWriter, r *http.Request, payment *domain.Payment) bool {
	claims := ClaimsFromContext(r.Context())
	if claims == nil || claims.Role != domain.RoleTenant {
		return true
	}

	companyID, err := claims.TenantCompanyID()
	if err != nil || payment.CompanyID != companyID {
		response.Forbidden(w, "Cannot access another company's payments")
		return false
	}
	return true
}
