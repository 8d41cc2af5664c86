// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/config"
	"github.com/wl-sites/offgrid-biz-flow/internal/handlers"
	"github.com/wl-sites/offgrid-biz-flow/internal/middleware"
	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, publisher *realtime.Publisher) (*gin.Engine, error) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, publisher)
	productService := services.NewProductService(db, publisher)
	saleService := services.NewSaleService(db, publisher)
	expenseService := services.NewExpenseService(db, publisher)
	statsService := services.NewStatsService(db)

	reportService, err := services.NewReportService(db, cfg)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	settingsHandler := handlers.NewSettingsHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	statsHandler := handlers.NewStatsHandler(statsService, userService)
	reportHandler := handlers.NewReportHandler(reportService)
	eventsHandler := handlers.NewEventsHandler(publisher)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Everything below is scoped to the authenticated user's data.
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Preferences
			protected.GET("/settings", settingsHandler.GetSettings)
			protected.PUT("/settings", settingsHandler.UpdateSettings)

			// Product catalog
			products := protected.Group("/products")
			{
				products.GET("", productHandler.GetProducts)
				products.POST("", productHandler.CreateProduct)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			// Sale ledger
			sales := protected.Group("/sales")
			{
				sales.GET("", saleHandler.GetSales)
				sales.POST("", saleHandler.RecordSale)
			}

			// Expense log
			expenses := protected.Group("/expenses")
			{
				expenses.GET("", expenseHandler.GetExpenses)
				expenses.POST("", expenseHandler.AddExpense)
				expenses.DELETE("/:id", expenseHandler.DeleteExpense)
			}

			// Dashboard aggregates
			protected.GET("/dashboard/stats", statsHandler.GetDashboardStats)

			// CSV exports
			reports := protected.Group("/reports")
			reports.Use(middleware.ExportRateLimit())
			{
				reports.GET("/sales/export", reportHandler.ExportSales)
				reports.GET("/expenses/export", reportHandler.ExportExpenses)
			}

			// Realtime change feed
			protected.GET("/events", eventsHandler.Stream)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/exports", "./exports")
	}

	return r, nil
}
