package http

import (
	"os"
	"strconv"
	"time"

	"finance_tracker/internal/http/handlers"
	"finance_tracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, authRateLimit, authRateWindow)

	// Legacy /api routes (kept for older clients)
	api := r.Group("/api")
	api.Use(middleware.RateLimit(apiRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, authRateLimit, authRateWindow)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, authRateLimit int, authRateWindow time.Duration) {
	// Auth (token issuance; everything below requires the token)
	authRL := middleware.RateLimit(authRateLimit, authRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// Transactions CRUD + CSV export
	tx := api.Group("/transactions")
	tx.Use(middleware.JWT())
	{
		tx.GET("", h.ListTransactions)
		tx.POST("", h.CreateTransaction)
		tx.GET("/export/csv", h.ExportTransactionsCSV)
		tx.PUT("/:id", h.UpdateTransaction)
		tx.DELETE("/:id", h.DeleteTransaction)
	}

	// Dashboard summary
	api.GET("/dashboard", middleware.JWT(), h.Dashboard)

	// Category analytics
	api.GET("/analytics/category-summary", middleware.JWT(), h.CategorySummary)

	// User profile & preferences
	user := api.Group("/user")
	user.Use(middleware.JWT())
	{
		user.GET("/profile", h.Profile)
		user.PATCH("/preferences", h.UpdatePreferences)
	}
}
