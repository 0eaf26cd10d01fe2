package handler

import (
	"context"
	"net/http"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AnalyticsService interface {
	Overview(ctx context.Context) (*model.AnalyticsOverview, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsService
}

func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Get("/analytics-overview", h.overview)
}

func (h *AnalyticsHandler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analyticsService.Overview(r.Context())
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Analytics fetching success", overview)
}
