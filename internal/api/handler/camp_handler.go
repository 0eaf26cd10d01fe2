package handler

import (
	"context"
	"net/http"

	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common"
	"medicamp_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CampService interface {
	ListCamps(ctx context.Context, q model.CampListQuery) ([]model.Camp, int64, error)
	GetCamp(ctx context.Context, idOrSlug string) (*model.Camp, error)
	RecentCamps(ctx context.Context) ([]model.Camp, error)
	CreateCamp(ctx context.Context, req service.CreateCampRequest) (*model.Camp, error)
	UpdateCamp(ctx context.Context, idHex string, update model.CampUpdate) error
	DeleteCamp(ctx context.Context, idHex string) error
}

type CampHandler struct {
	campService CampService
	adminOnly   func(http.Handler) http.Handler
}

func NewCampHandler(campService CampService, adminOnly func(http.Handler) http.Handler) *CampHandler {
	return &CampHandler{campService: campService, adminOnly: adminOnly}
}

func (h *CampHandler) RegisterRoutes(r chi.Router) {
	r.Get("/camps", h.listCamps)
	r.Get("/camp/{id}", h.getCamp)
	r.Get("/recent-camps", h.recentCamps)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(h.adminOnly)
		admin.Post("/camps", h.createCamp)
		admin.Patch("/update-camp/{id}", h.updateCamp)
		admin.Delete("/delete-camp/{id}", h.deleteCamp)
	})
}

// listCamps serves GET /camps?home=&sort=&search=&page=&available=.
func (h *CampHandler) listCamps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.CampListQuery{
		Home:      queryFlag(r, "home"),
		Sort:      q.Get("sort"),
		Search:    q.Get("search"),
		Page:      queryPage(r),
		Available: queryFlag(r, "available"),
	}

	camps, total, err := h.campService.ListCamps(r.Context(), query)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	if camps == nil {
		camps = []model.Camp{}
	}
	respondWithPage(w, "Camps data fetching success", camps, total)
}

func (h *CampHandler) getCamp(w http.ResponseWriter, r *http.Request) {
	camp, err := h.campService.GetCamp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Camp fetching success", camp)
}

func (h *CampHandler) recentCamps(w http.ResponseWriter, r *http.Request) {
	camps, err := h.campService.RecentCamps(r.Context())
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Recent camps fetching success", camps)
}

func (h *CampHandler) createCamp(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCampRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	camp, err := h.campService.CreateCamp(r.Context(), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Camp created successfully", camp)
}

func (h *CampHandler) updateCamp(w http.ResponseWriter, r *http.Request) {
	var update model.CampUpdate
	if !decodeBody(w, r, &update, false) {
		return
	}
	if err := h.campService.UpdateCamp(r.Context(), chi.URLParam(r, "id"), update); err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Camp updated successfully", nil)
}

func (h *CampHandler) deleteCamp(w http.ResponseWriter, r *http.Request) {
	if err := h.campService.DeleteCamp(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Camp deleted successfully", nil)
}
