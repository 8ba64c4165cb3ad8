package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/akmanlar/rentroll/internal/config"
	"github.com/akmanlar/rentroll/internal/handler"
	"github.com/akmanlar/rentroll/internal/repository"
	"github.com/akmanlar/rentroll/internal/service"
	"github.com/akmanlar/rentroll/pkg/response"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	companyService := service.NewCompanyService(companyRepo, paymentRepo, invoiceRepo, userRepo, redisClient, cfg.Auth.BcryptCost)
	paymentService := service.NewPaymentService(paymentRepo, companyRepo, redisClient)
	invoiceService := service.NewInvoiceService(invoiceRepo, companyRepo, cfg.Storage.InvoiceDir, cfg.Storage.BaseURL)
	dashboardService := service.NewDashboardService(companyRepo, paymentRepo, redisClient, cfg.Dashboard.CacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(cfg, authService, authHandler, companyHandler, paymentHandler, invoiceHandler, dashboardHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	cfg *config.Config,
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
	paymentHandler *handler.PaymentHandler,
	invoiceHandler *handler.InvoiceHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.RecoveryMiddleware)
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Resource not found")
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Uploaded invoice documents
	router.PathPrefix(cfg.Storage.BaseURL + "/").Handler(
		http.StripPrefix(cfg.Storage.BaseURL+"/", http.FileServer(http.Dir(cfg.Storage.InvoiceDir))))

	// Public API routes
	public := router.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Authenticated API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(handler.AuthMiddleware(authService))

	api.HandleFunc("/companies", handler.RequireAdmin(companyHandler.List)).Methods("GET")
	api.HandleFunc("/companies", handler.RequireAdmin(companyHandler.Create)).Methods("POST")
	api.HandleFunc("/companies/{id}", handler.RequireAdmin(companyHandler.Get)).Methods("GET")
	api.HandleFunc("/companies/{id}", handler.RequireAdmin(companyHandler.Update)).Methods("PUT")
	api.HandleFunc("/companies/{id}", handler.RequireAdmin(companyHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/companies/{id}/deactivate", handler.RequireAdmin(companyHandler.Deactivate)).Methods("POST")

	api.HandleFunc("/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/payments", handler.RequireAdmin(paymentHandler.Create)).Methods("POST")
	api.HandleFunc("/payments/{id}", paymentHandler.Get).Methods("GET")
	api.HandleFunc("/payments/{id}/pay", paymentHandler.Settle).Methods("PUT")

	api.HandleFunc("/invoices", invoiceHandler.List).Methods("GET")
	api.HandleFunc("/invoices", handler.RequireAdmin(invoiceHandler.Upload)).Methods("POST")
	api.HandleFunc("/invoices/{id}", invoiceHandler.Get).Methods("GET")

	api.HandleFunc("/dashboard", handler.RequireAdmin(dashboardHandler.Stats)).Methods("GET")

	return router
}
