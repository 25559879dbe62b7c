package routes

import (
	"taskhive-api/internal/handlers"
	"taskhive-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskHive API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/login", handlers.Login)
		api.GET("/auth/validate-token", handlers.ValidateSetupToken)
		api.POST("/auth/setup-password", handlers.SetupPassword)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Story endpoints
		protectedRoutes.GET("/stories", handlers.GetStories)
		protectedRoutes.GET("/stories/:id", handlers.GetStoryByID)
		protectedRoutes.POST("/stories", handlers.CreateStory)
		protectedRoutes.PUT("/stories/:id", handlers.UpdateStory)
		protectedRoutes.PATCH("/stories/:id/status", handlers.UpdateStoryStatus)
		protectedRoutes.DELETE("/stories/:id", handlers.DeleteStory)

		// Sprint endpoints
		protectedRoutes.GET("/sprints", handlers.GetSprints)
		protectedRoutes.GET("/sprints/current", handlers.GetCurrentSprint)
		protectedRoutes.GET("/sprints/:id", handlers.GetSprintByID)
		protectedRoutes.GET("/sprints/:id/available", handlers.GetAvailableStories)
		protectedRoutes.POST("/sprints", handlers.CreateSprint)
		protectedRoutes.PUT("/sprints/:id", handlers.UpdateSprint)
		protectedRoutes.POST("/sprints/:id/close", handlers.CloseSprint)
		protectedRoutes.POST("/sprints/:id/stories", handlers.AddStoryToSprint)
		protectedRoutes.DELETE("/sprints/:id/stories/:storyId", handlers.RemoveStoryFromSprint)

		// Team endpoints
		protectedRoutes.GET("/teams", handlers.GetTeams)
		protectedRoutes.POST("/teams", handlers.CreateTeam)
		protectedRoutes.PUT("/teams/:id", handlers.UpdateTeam)
		protectedRoutes.PUT("/teams/:id/members", handlers.UpdateTeamMembers)
		protectedRoutes.DELETE("/teams/:id", handlers.DeleteTeam)

		// Users endpoints
		protectedRoutes.GET("/users", handlers.GetUsers)
		protectedRoutes.POST("/users", handlers.CreateUser)

		// Analytics
		protectedRoutes.GET("/analytics/dashboard", handlers.GetDashboardStats)

		// Realtime event feed
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
