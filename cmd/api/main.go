package main

import (
	"log"
	"os"
	"strings"

	_ "transio/api/swagger" // swagger docs
	"transio/internal/database"
	"transio/internal/handler"
	"transio/internal/middleware"
	"transio/internal/repository"
	"transio/internal/service"
	"transio/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Transio API
// @version         1.0
// @description     Transport management backend: trips, drivers, vehicles, partners, invoices, dashboard.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "transio")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Redis is optional; without it the dashboard recomputes on every call.
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient, err = database.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			log.Printf("Redis unavailable, dashboard caching disabled: %v", err)
			redisClient = nil
		}
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	backupRepo := repository.NewBackupRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	tripService := service.NewTripService(tripRepo, driverRepo, vehicleRepo, partnerRepo, auditRepo, txManager)
	driverService := service.NewDriverService(driverRepo)
	vehicleService := service.NewVehicleService(vehicleRepo)
	partnerService := service.NewPartnerService(partnerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, tripRepo, auditRepo)
	dashboardService := service.NewDashboardService(tripRepo, driverRepo, vehicleRepo, invoiceRepo, redisClient, wsHub)
	reportService := service.NewReportService(tripRepo, vehicleRepo, invoiceRepo)
	documentService := service.NewDocumentService(documentRepo, os.Getenv("UPLOAD_DIR"))
	settingsService := service.NewSettingsService(companyRepo, backupRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(userService)
	tripHandler := handler.NewTripHandler(tripService)
	driverHandler := handler.NewDriverHandler(driverService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, settingsService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	uploadHandler := handler.NewUploadHandler(documentService)
	settingsHandler := handler.NewSettingsHandler(settingsService, userService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = corsOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.PrometheusMiddleware())

	rateLimiter := middleware.NewRateLimiter(20, 40)
	router.Use(rateLimiter.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	tripHandler.RegisterRoutes(router.Group(""))
	driverHandler.RegisterRoutes(router.Group(""))
	vehicleHandler.RegisterRoutes(router.Group(""))
	partnerHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	uploadHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func corsOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"}
}
