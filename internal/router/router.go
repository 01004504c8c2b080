// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/handlers"
	"github.com/agrilink/agrilink-backend/internal/middleware"
	"github.com/agrilink/agrilink-backend/internal/models"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)
	aiService := services.NewAIService(cfg)

	authService := services.NewAuthService(db, cfg)
	inventoryService := services.NewInventoryService(db)
	customerService := services.NewCustomerService(db)
	saleService := services.NewSaleService(db, notificationService)
	diseaseService := services.NewDiseaseService(db, aiService)
	weatherService := services.NewWeatherService(db, cfg)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, storageService, cfg)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, storageService, cfg)
	customerHandler := handlers.NewCustomerHandler(customerService)
	saleHandler := handlers.NewSaleHandler(saleService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseService, storageService, cfg)
	weatherHandler := handlers.NewWeatherHandler(weatherService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, authService)
	chatHandler := handlers.NewChatHandler(aiService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Local uploads are served directly in development; production points
	// clients at S3 URLs instead.
	if cfg.Environment != "production" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

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
			auth.GET("/me", middleware.AuthRequired(), userHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.POST("/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			users.DELETE("/account", userHandler.DeleteAccount)
		}

		// Farmer surface
		farmer := v1.Group("/farmer")
		farmer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserTypeFarmer))
		{
			farmer.GET("/dashboard", dashboardHandler.FarmerDashboard)
			farmer.POST("/detect-disease", middleware.UploadRateLimit(), diseaseHandler.DetectDisease)
			farmer.GET("/reports", diseaseHandler.ListMyReports)
			farmer.GET("/weather", weatherHandler.GetCurrentWeather)
			farmer.GET("/weather/forecast", weatherHandler.GetForecast)
			farmer.GET("/agrovets", dashboardHandler.ListAgrovets)
		}

		// Agrovet surface: inventory, CRM, point of sale
		agrovet := v1.Group("/agrovet")
		agrovet.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserTypeAgrovet))
		{
			agrovet.GET("/dashboard", dashboardHandler.AgrovetDashboard)

			agrovet.POST("/inventory", inventoryHandler.CreateItem)
			agrovet.GET("/inventory", inventoryHandler.ListItems)
			agrovet.GET("/inventory/low-stock", inventoryHandler.ListLowStock)
			agrovet.GET("/inventory/:id", inventoryHandler.GetItem)
			agrovet.PUT("/inventory/:id", inventoryHandler.UpdateItem)
			agrovet.DELETE("/inventory/:id", inventoryHandler.DeleteItem)
			agrovet.POST("/inventory/:id/image", middleware.UploadRateLimit(), inventoryHandler.UploadItemImage)

			agrovet.POST("/customers", customerHandler.CreateCustomer)
			agrovet.GET("/customers", customerHandler.ListCustomers)
			agrovet.GET("/customers/:id", customerHandler.GetCustomer)
			agrovet.PUT("/customers/:id", customerHandler.UpdateCustomer)
			agrovet.DELETE("/customers/:id", customerHandler.DeleteCustomer)
			agrovet.POST("/customers/:id/communications", customerHandler.AddCommunication)

			agrovet.GET("/pos/products", inventoryHandler.ListInStock)
			agrovet.GET("/pos/customers", customerHandler.ListCustomers)
			agrovet.POST("/pos/checkout", saleHandler.Checkout)

			agrovet.GET("/sales", saleHandler.ListSales)
			agrovet.GET("/sales/:id", saleHandler.GetSale)
		}

		// Extension officer surface
		officer := v1.Group("/officer")
		officer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserTypeExtensionOfficer))
		{
			officer.GET("/dashboard", dashboardHandler.OfficerDashboard)
			officer.GET("/farmers", dashboardHandler.ListFarmers)
			officer.GET("/reports", diseaseHandler.ListRecentReports)
			officer.GET("/reports/:id", diseaseHandler.GetReport)
			officer.PUT("/reports/:id/status", diseaseHandler.UpdateReportStatus)
		}

		// Learning institution surface (aggregate data only)
		institution := v1.Group("/institution")
		institution.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserTypeInstitution))
		{
			institution.GET("/dashboard", dashboardHandler.InstitutionDashboard)
		}

		// Advisory chat, available to any authenticated user
		v1.POST("/chat", middleware.AuthRequired(), chatHandler.Chat)

		// Notifications
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}
	}

	return r
}
