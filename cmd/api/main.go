package main

import (
	_ "itrfiling/api/swagger" // swagger docs
	"itrfiling/internal/config"
	"itrfiling/internal/database"
	"itrfiling/internal/handler"
	"itrfiling/internal/repository"
	"itrfiling/internal/service"
	"itrfiling/internal/taxengine"
	"itrfiling/internal/websocket"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Income Tax Filing API
// @version         1.0
// @description     Computes Indian personal income tax under the old and new regimes and recommends the cheaper one.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.Load()

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(cfg.CORSOrigins)
	go wsHub.Run()

	engine := taxengine.NewEngine(cfg.EngineOptions())
	log.Printf("Tax engine options: %+v", engine.Options())

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	filingRepo := repository.NewFilingRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	deductionRepo := repository.NewDeductionRepository(db)
	capitalGainRepo := repository.NewCapitalGainRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	filingService := service.NewFilingService(filingRepo, incomeRepo, deductionRepo, capitalGainRepo, auditRepo, txManager, engine, wsHub)
	incomeService := service.NewIncomeService(filingRepo, incomeRepo, auditRepo, txManager, filingService)
	deductionService := service.NewDeductionService(filingRepo, deductionRepo, auditRepo, txManager, filingService)
	capitalGainService := service.NewCapitalGainService(filingRepo, capitalGainRepo, auditRepo, txManager, filingService)
	taxService := service.NewTaxService(engine)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	filingHandler := handler.NewFilingHandler(filingService)
	incomeHandler := handler.NewIncomeHandler(incomeService)
	deductionHandler := handler.NewDeductionHandler(deductionService)
	capitalGainHandler := handler.NewCapitalGainHandler(capitalGainService)
	taxHandler := handler.NewTaxHandler(taxService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint, one filing per connection
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	filingHandler.RegisterRoutes(router.Group(""))
	incomeHandler.RegisterRoutes(router.Group(""))
	deductionHandler.RegisterRoutes(router.Group(""))
	capitalGainHandler.RegisterRoutes(router.Group(""))
	taxHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
