package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/handler"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/repository"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("AI Real Estate Agent")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize run persistence (optional)
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  Persistence is disabled - set DATABASE_URL to store run results")
	}

	// Initialize collaborator clients
	aiClient := service.NewOpenAIClient(&cfg.OpenAI)
	log.Printf("✅ OpenAI client initialized")
	log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
	log.Printf("   - Extraction model: %s", cfg.OpenAI.ExtractModel)
	log.Printf("   - Agent model: %s", cfg.OpenAI.AgentModel)

	geocoder := service.NewGeocodeClient(&cfg.Geocoding)
	if cfg.Geocoding.Enabled {
		log.Printf("✅ Geocoding client initialized")
	} else {
		log.Println("⚠️  Geocoding is disabled - searches will run without map bounds")
		log.Println("   Set OPENCAGE_API_KEY environment variable to enable it")
	}

	listingSource := service.NewApifyClient(&cfg.Apify)
	log.Printf("✅ Scraping platform client initialized")
	log.Printf("   - Search actor: %s", cfg.Apify.SearchActor)
	log.Printf("   - Detail actor: %s", cfg.Apify.DetailActor)
	log.Printf("   - Max items: %d", cfg.Apify.MaxItems)

	// Initialize services
	renderer := service.NewReportRenderer(&cfg.Agent)
	agentService := service.NewAgentService(aiClient, geocoder, listingSource, renderer, service.LogMeter{})

	log.Println("✅ Services initialized")

	// Initialize handlers
	agentHandler := handler.NewAgentHandler(agentService, repo)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "ai-real-estate-agent",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/agent/runs", agentHandler.Run)
		apiV1.GET("/runs", agentHandler.ListRuns)
		apiV1.GET("/runs/:id", agentHandler.GetRun)
		apiV1.GET("/runs/:id/report", agentHandler.GetReport)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
