package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/config"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/handlers"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/services"
	"github.com/username/masdompet/backend/src/utils"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				utils.SendJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				logger.FromContext(r.Context()).Warn("Rate limit exceeded", "path", r.URL.Path)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(origins []string) func(http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowedOrigins[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowedOrigins[origin] || allowedOrigins["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Requested-With, If-None-Match")
				w.Header().Set("Access-Control-Expose-Headers", "ETag, X-Request-ID, Content-Disposition")
			} else if origin == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Mas Dompet backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations()

	reportCache := cache.New(config.Cfg.SummaryCacheTTL, services.CacheCleanupInterval)

	transactionProcessor := processors.NewTransactionProcessor(config.Cfg.CurrencyCode)
	summaryProcessor := processors.NewSummaryProcessor()

	ledgerService := services.NewLedgerService(database.DB, transactionProcessor, reportCache)
	debtService := services.NewDebtService(database.DB, transactionProcessor, reportCache)
	investmentService := services.NewInvestmentService(database.DB, transactionProcessor, reportCache)
	goalService := services.NewGoalService(database.DB, transactionProcessor, reportCache)
	categoryService := services.NewCategoryService(database.DB, reportCache)
	summaryService := services.NewSummaryService(database.DB, summaryProcessor, reportCache)
	importService := services.NewImportService(ledgerService, transactionProcessor)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS(config.Cfg.AllowedOrigins))
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(config.Cfg.RateLimitRPS), config.Cfg.RateLimitBurst)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Mas Dompet Backend is running"})
	})

	handlers.RegisterRoutes(r, handlers.Handlers{
		Summary:      handlers.NewSummaryHandler(summaryService),
		Transactions: handlers.NewTransactionHandler(ledgerService),
		Uploads:      handlers.NewUploadHandler(importService, config.Cfg.MaxUploadSizeBytes),
		Debts:        handlers.NewDebtHandler(debtService),
		Investments:  handlers.NewInvestmentHandler(investmentService),
		Goals:        handlers.NewGoalHandler(goalService),
		Categories:   handlers.NewCategoryHandler(categoryService),
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			utils.SendJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		http.NotFound(w, r)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
