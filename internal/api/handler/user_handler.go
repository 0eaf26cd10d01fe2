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

type UserService interface {
	CreateUser(ctx context.Context, email string, req service.CreateUserRequest) (*model.User, bool, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, email string, update model.UserUpdate) error
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users/{email}", h.createUser)
	r.Get("/users", h.listUsers)

	r.Group(func(owner chi.Router) {
		owner.Use(middleware.Authenticator)
		owner.Use(middleware.OwnerOnly("email"))
		owner.Get("/user/{email}", h.getUser)
		owner.Patch("/user/{email}", h.updateUser)
		owner.Get("/admin/{email}", h.isAdmin)
	})
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	user, created, err := h.userService.CreateUser(r.Context(), middleware.EmailParam(r, "email"), req)
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	if !created {
		common.RespondWithData(w, http.StatusOK, "User already exists", user)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "All users data fetching success", users)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), middleware.EmailParam(r, "email"))
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	// A nil user encodes as "data": null.
	common.RespondWithData(w, http.StatusOK, "fetching success", user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var update model.UserUpdate
	if !decodeBody(w, r, &update, false) {
		return
	}
	if err := h.userService.UpdateUser(r.Context(), middleware.EmailParam(r, "email"), update); err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "updated success", nil)
}

func (h *UserHandler) isAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := h.userService.IsAdmin(r.Context(), middleware.EmailParam(r, "email"))
	if err != nil {
		common.RespondWithErr(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "User verify success", admin)
}
