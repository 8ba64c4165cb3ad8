package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/service"
	"github.com/akmanlar/rentroll/pkg/response"
)

// maxInvoiceUpload caps multipart parsing at 10 MiB.
const maxInvoiceUpload = 10 << 20

type InvoiceHandler struct {
	service *service.InvoiceService
}

func NewInvoiceHandler(service *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List handles GET /api/v1/invoices with companyId/period filters. Tenant
// tokens are always scoped to their own company.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.InvoiceFilter

	if raw := r.URL.Query().Get("companyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid companyId filter", err)
			return
		}
		filter.CompanyID = &id
	}
	filter.Period = r.URL.Query().Get("period")

	claims := ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == domain.RoleTenant {
		companyID, err := claims.TenantCompanyID()
		if err != nil {
			response.Forbidden(w, "Tenant account is not linked to a company")
			return
		}
		if filter.CompanyID != nil && *filter.CompanyID != companyID {
			response.Forbidden(w, "Cannot view another company's invoices")
			return
		}
		filter.CompanyID = &companyID
	}

	invoices, err := h.service.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, invoices)
}

// Upload handles POST /api/v1/invoices as a multipart form with fields
// company_id, type, period and the document under "file".
func (h *InvoiceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxInvoiceUpload); err != nil {
		response.BadRequest(w, "Invalid multipart form", err)
		return
	}

	companyID, err := uuid.Parse(r.FormValue("company_id"))
	if err != nil {
		response.BadRequest(w, "Invalid company_id", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing invoice file", err)
		return
	}
	defer file.Close()

	invoice, err := h.service.Upload(
		r.Context(),
		companyID,
		domain.PaymentType(r.FormValue("type")),
		r.FormValue("period"),
		header.Filename,
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, invoice)
}

// Get handles GET /api/v1/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice ID", err)
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	claims := ClaimsFromContext(r.Context())
	if claims != nil && claims.Role == domain.RoleTenant {
		companyID, err := claims.TenantCompanyID()
		if err != nil || invoice.CompanyID != companyID {
			response.Forbidden(w, "Cannot access another company's invoices")
			return
		}
	}

	response.Success(w, invoice)
}
