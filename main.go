package main

import (
	"log"
	"time"

	"roamly/config"
	"roamly/database"
	"roamly/handlers"
	"roamly/logger"
	"roamly/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	// Initialize database
	database.InitDB(cfg.Database.DSN())

	// Planning agent client
	planner := services.NewPlannerClient(cfg.Agent.URL, cfg.Agent.Timeout(), zlog)

	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.SetTrustedProxies(cfg.Server.TrustedProxies)

	// CORS — allow configured frontend origins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.POST("/plan", handlers.PlanHandler(planner, cfg.Trip.DailyFoodBudget, zlog))
		api.GET("/itineraries/:id", handlers.GetItineraryHandler())
		api.GET("/plans/:id/itinerary", handlers.GetPlanItineraryHandler())
		api.POST("/itineraries/:id/pdf", handlers.GeneratePDFHandler(zlog))
		api.GET("/download/:id", handlers.DownloadHandler)
	}

	zlog.Info("🚀 Roamly backend starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
