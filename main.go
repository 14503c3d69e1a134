package main

import (
	"log"
	"oscarpool/config"
	"oscarpool/handlers"
	"oscarpool/middleware"
	"oscarpool/models"
	"oscarpool/routes"
	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Admin{},
		&models.SystemConfig{},
		&models.Category{},
		&models.Nominee{},
		&models.Lobby{},
		&models.Participant{},
		&models.Prediction{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	limitsService := services.NewLimitsService(db)
	if err := limitsService.EnsureConfig(); err != nil {
		log.Fatal("Failed to seed system config:", err)
	}
	authService := services.NewAuthService(db, cfg.JWTSecret)
	categoryService := services.NewCategoryService(db, redisClient)
	lobbyService := services.NewLobbyService(db)
	participantService := services.NewParticipantService(db)
	leaderboardService := services.NewLeaderboardService(db)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, limitsService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	lobbyHandler := handlers.NewLobbyHandler(lobbyService, categoryService, limitsService)
	participantHandler := handlers.NewParticipantHandler(participantService, lobbyService, limitsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	statsHandler := handlers.NewStatsHandler(statsService, limitsService, authService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, categoryHandler, lobbyHandler,
		participantHandler, leaderboardHandler, statsHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
