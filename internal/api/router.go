package api

import (
	"net/http"

	"medicamp_api/internal/api/handler"
	"medicamp_api/internal/api/middleware"
	"medicamp_api/internal/common"
	"medicamp_api/internal/common/security"
	"medicamp_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// UserService serves the user routes and resolves roles for AdminOnly.
type UserService interface {
	handler.UserService
	middleware.RoleResolver
}

// Services bundles everything the router dispatches to.
type Services struct {
	Auth        handler.TokenIssuer
	Users       UserService
	Camps       handler.CampService
	Participant handler.ParticipantService
	Payments    handler.PaymentService
	Feedback    handler.FeedbackService
	Analytics   handler.AnalyticsService
}

func NewRouter(cfg *config.Config, tokens *security.TokenAuth, svc Services) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))

	// Puts the verified token (or the verification error) into the context.
	// Routes opt into enforcement with middleware.Authenticator.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MediCamp running ...."))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	adminOnly := middleware.AdminOnly(svc.Users)

	handler.NewAuthHandler(svc.Auth).RegisterRoutes(r)
	handler.NewUserHandler(svc.Users).RegisterRoutes(r)
	handler.NewCampHandler(svc.Camps, adminOnly).RegisterRoutes(r)
	handler.NewParticipantHandler(svc.Participant, adminOnly).RegisterRoutes(r)
	handler.NewPaymentHandler(svc.Payments).RegisterRoutes(r)
	handler.NewFeedbackHandler(svc.Feedback).RegisterRoutes(r)
	handler.NewAnalyticsHandler(svc.Analytics).RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "route not found")
	})

	return r
}
