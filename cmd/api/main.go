package main

import (
	"log"
	"net/http"
	"time"

	_ "trasporto-backend/api/swagger" // swagger docs
	"trasporto-backend/internal/config"
	"trasporto-backend/internal/database"
	"trasporto-backend/internal/handler"
	"trasporto-backend/internal/middleware"
	"trasporto-backend/internal/repository"
	"trasporto-backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Trasporto Sociale API
// @version         1.0
// @description     Scheduling and record keeping for a social transport service: recipients, drivers, destinations and (recurring) transports behind an admin-approved login.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("no configs/.env file found")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("connected to PostgreSQL")

	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	requestRepo := repository.NewAccessRequestRepository(db)
	personRepo := repository.NewPersonRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	transportRepo := repository.NewTransportRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	txManager := repository.NewTransactionManager(db)

	// Services
	secret := []byte(cfg.JWT.Secret)
	tokenTTL := time.Duration(cfg.JWT.ExpireHours) * time.Hour
	authService := service.NewAuthService(accountRepo, requestRepo, secret, tokenTTL)
	requestService := service.NewAccessRequestService(requestRepo, accountRepo, auditRepo, txManager)
	accountService := service.NewAccountService(accountRepo, auditRepo)
	personService := service.NewPersonService(personRepo)
	driverService := service.NewDriverService(driverRepo)
	destinationService := service.NewDestinationService(destinationRepo)
	transportService := service.NewTransportService(transportRepo, personRepo, driverRepo, destinationRepo, auditRepo, txManager)
	reportService := service.NewReportService(transportRepo, personRepo, driverRepo, destinationRepo)
	auditService := service.NewAuditService(auditRepo)

	requireAuth := middleware.RequireAuth(secret, accountRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, requestService, accountService, requireAuth)
	personHandler := handler.NewPersonHandler(personService, requireAuth)
	driverHandler := handler.NewDriverHandler(driverService, requireAuth)
	destinationHandler := handler.NewDestinationHandler(destinationService, requireAuth)
	transportHandler := handler.NewTransportHandler(transportService, requireAuth)
	reportHandler := handler.NewReportHandler(reportService, requireAuth)
	auditHandler := handler.NewAuditHandler(auditService, requireAuth)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthCheck := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	}
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	api.GET("/health", healthCheck)
	authHandler.RegisterRoutes(api)
	personHandler.RegisterRoutes(api)
	driverHandler.RegisterRoutes(api)
	destinationHandler.RegisterRoutes(api)
	transportHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	log.Printf("server listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
