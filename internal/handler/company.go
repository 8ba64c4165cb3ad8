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

type CompanyHandler struct {
	service   *service.CompanyService
	validator *validator.Validate
}

func NewCompanyHandler(service *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		service:   service,
		validator: validator.New(),
	}
}

// List handles GET /api/v1/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("includePayments") == "true" {
		companies, err := h.service.ListCompaniesWithPayments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		response.Success(w, companies)
		return
	}

	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, companies)
}

// Create handles POST /api/v1/companies
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid company request", err)
		return
	}

	result, err := h.service.CreateCompany(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

// Get handles GET /api/v1/companies/{id}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid company ID", err)
		return
	}

	detail, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, detail)
}

// Update handles PUT /api/v1/companies/{id}
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid company ID", err)
		return
	}

	var request domain.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Invalid company request", err)
		return
	}

	company, err := h.service.UpdateCompany(r.Context(), id, &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, company)
}

// Deactivate handles POST /api/v1/companies/{id}/deactivate
func (h *CompanyHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid company ID", err)
		return
	}

	if err := h.service.DeactivateCompany(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Company deactivated"})
}

// Delete handles DELETE /api/v1/companies/{id}
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid company ID", err)
		return
	}

	if err := h.service.DeleteCompany(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Company deleted"})
}
