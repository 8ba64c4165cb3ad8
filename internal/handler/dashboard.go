package handler

import (
	"net/http"

	"github.com/akmanlar/rentroll/internal/service"
	"github.com/akmanlar/rentroll/pkg/response"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /api/v1/dashboard
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, stats)
}
