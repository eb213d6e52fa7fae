package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymlink/handlers"
	"gymlink/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "GymLink API is running",
			"time":    time.Now().Unix(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:5500", "http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required)
	router.POST("/api/signup", handlers.Signup)
	router.POST("/api/login", handlers.Login)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())
	protected.Use(middleware.RateLimitMiddleware())

	// Profile
	protected.GET("/me", handlers.GetMe)
	protected.PUT("/me", handlers.UpdateMe)

	// Conversations
	protected.GET("/conversations", handlers.GetConversations)
	protected.GET("/conversations/:id/messages", handlers.GetMessages)
	protected.POST("/conversations/:id/read", handlers.MarkConversationRead)

	// Messages
	protected.POST("/message", handlers.SendMessage)
	protected.POST("/messages/:id/pin", handlers.TogglePin)
	protected.DELETE("/messages/:id", handlers.DeleteMessage)

	// Groups
	protected.POST("/groups", handlers.CreateGroup)
	protected.POST("/groups/:id/join", handlers.JoinGroup)
	protected.POST("/groups/:id/leave", handlers.LeaveGroup)

	// Media upload
	protected.POST("/upload-media", handlers.UploadMedia)

	// Push subscriptions
	protected.POST("/subscribe", handlers.SubscribePush)

	// Catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
