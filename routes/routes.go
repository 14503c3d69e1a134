package routes

import (
	"net/http"

	"oscarpool/handlers"
	"oscarpool/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	lobbyHandler *handlers.LobbyHandler,
	participantHandler *handlers.ParticipantHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	statsHandler *handlers.StatsHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// Admin profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Category management
			categories := protected.Group("/categories")
			{
				categories.GET("", categoryHandler.GetCategories)
				categories.POST("", categoryHandler.CreateCategory)
				categories.POST("/reorder", categoryHandler.ReorderCategories)
				categories.POST("/bulk-import", categoryHandler.BulkImport)
				categories.PATCH("/:id", categoryHandler.UpdateCategory)
				categories.DELETE("/:id", categoryHandler.DeleteCategory)
				categories.POST("/:id/nominees", categoryHandler.AddNominee)
				categories.DELETE("/:id/nominees/:nomineeId", categoryHandler.DeleteNominee)
				categories.POST("/:id/nominees/:nomineeId/winner", categoryHandler.SetWinner)
				categories.DELETE("/:id/winner", categoryHandler.ClearWinner)
			}

			// Lobby management
			lobbies := protected.Group("/lobbies")
			{
				lobbies.POST("/create", lobbyHandler.CreateLobby)
				lobbies.GET("/my-lobbies", lobbyHandler.GetMyLobbies)
				lobbies.PATCH("/:id/lock", lobbyHandler.LockLobby)
				lobbies.PATCH("/:id/unlock", lobbyHandler.UnlockLobby)
				lobbies.PATCH("/:id/complete", lobbyHandler.CompleteLobby)
				lobbies.DELETE("/:id", lobbyHandler.DeleteLobby)
				lobbies.DELETE("/:id/participants/:participantId", lobbyHandler.DeleteParticipant)
				lobbies.POST("/:id/participants/bulk-delete", lobbyHandler.BulkDeleteParticipants)
			}

			// System stats (reserved "admin" account only)
			stats := protected.Group("/stats")
			{
				stats.GET("", statsHandler.GetSystemStats)
				stats.GET("/usage", statsHandler.GetUsageStats)
				stats.PATCH("/limits", statsHandler.UpdateLimits)
			}
		}

		// Public lobby routes (anyone with the invite link)
		lobbies := api.Group("/lobbies")
		{
			lobbies.GET("/:id", lobbyHandler.GetLobby)
			lobbies.GET("/:id/categories", lobbyHandler.GetLobbyCategories)
			lobbies.GET("/:id/participants", lobbyHandler.GetParticipants)
		}

		// Public participant routes
		participants := api.Group("/participants")
		{
			participants.POST("/submit", participantHandler.SubmitPredictions)
			participants.GET("/:participantId/picks", participantHandler.GetParticipantPicks)
		}

		// Public leaderboard, polled by clients on a fixed interval
		api.GET("/leaderboard/:lobbyId", leaderboardHandler.GetLeaderboard)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
