package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/warikanhq/warikan/docs"
	"github.com/warikanhq/warikan/internal/config"
	"github.com/warikanhq/warikan/internal/database"
	"github.com/warikanhq/warikan/internal/group"
	"github.com/warikanhq/warikan/internal/notification"
	"github.com/warikanhq/warikan/internal/payment"
	"github.com/warikanhq/warikan/internal/recurring"
	"github.com/warikanhq/warikan/internal/settlement"
	"github.com/warikanhq/warikan/internal/user"
	"github.com/warikanhq/warikan/pkg/logging"
	"github.com/warikanhq/warikan/pkg/metrics"
	mw "github.com/warikanhq/warikan/pkg/middleware"
)

//	@title			Warikan API
//	@version		1.0
//	@description	Shared-household expense tracking and settlement API.
//	@BasePath		/api/v1

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Payment feature
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, notificationService)
	paymentHandler := payment.NewHandler(paymentService)

	// Recurring rule feature
	recurringRepo := recurring.NewRepository(db)
	recurringService := recurring.NewService(recurringRepo)
	recurringHandler := recurring.NewHandler(recurringService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db, paymentRepo)
	settlementService := settlement.NewService(settlementRepo, paymentRepo, recurringRepo, groupRepo, notificationService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(mw.AuthMiddleware(cfg.JWTSecret))
		} else {
			slog.Warn("JWT_SECRET not set, using test user middleware")
			r.Use(mw.TestUserMiddleware)
		}

		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/recurring-rules", recurringHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
