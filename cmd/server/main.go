package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicamp_api/internal/api"
	"medicamp_api/internal/app/service"
	"medicamp_api/internal/common/security"
	"medicamp_api/internal/domain/repository"
	"medicamp_api/internal/platform/config"
	"medicamp_api/internal/platform/database"
	"medicamp_api/internal/platform/lock"
	"medicamp_api/internal/platform/payment"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	log.Println("Configuration loaded.")

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	// 2. Initialize Database
	client, db, err := database.Connect(startCtx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer database.Close(context.Background(), client)
	if err := database.EnsureIndexes(startCtx, db); err != nil {
		log.Fatalf("%v", err)
	}

	// 3. Initialize write lock (Redis, optional)
	locker, closeLock, err := lock.Connect(startCtx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLock()

	// 4. Initialize JWT and payment gateway
	tokens := security.NewTokenAuth(cfg.JWTSecret, cfg.JWTTTL)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.PaymentCurrency)
	if cfg.StripeSecretKey == "" {
		log.Println("WARN: STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	// 5. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(db)
	campRepo := repository.NewMongoCampRepository(db)
	participantRepo := repository.NewMongoParticipantRepository(db)
	paymentRepo := repository.NewMongoPaymentRepository(db)
	feedbackRepo := repository.NewMongoFeedbackRepository(db)
	analyticsRepo := repository.NewMongoAnalyticsRepository(db)

	// 6. Initialize Services
	services := api.Services{
		Auth:        service.NewAuthService(tokens),
		Users:       service.NewUserService(userRepo),
		Camps:       service.NewCampService(campRepo),
		Participant: service.NewParticipantService(participantRepo, campRepo, locker),
		Payments:    service.NewPaymentService(paymentRepo, participantRepo, gateway, locker),
		Feedback:    service.NewFeedbackService(feedbackRepo),
		Analytics:   service.NewAnalyticsService(analyticsRepo),
	}

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, tokens, services)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("MediCamp running on port: %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
