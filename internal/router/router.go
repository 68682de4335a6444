// Package router assembles the gin engine and every API route.
package router

import (
	"net/http"
	"time"

	_ "gamebase/backend/docs" // registers the swagger document
	"gamebase/backend/internal/auth"
	"gamebase/backend/internal/config"
	"gamebase/backend/internal/handler"
	"gamebase/backend/internal/middleware"
	"gamebase/backend/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New builds the HTTP engine. Handlers read database.DB and the other
// package-level dependencies, so those must be wired before serving.
func New(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins(),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireAuth := auth.AuthMiddleware()
	optionalAuth := auth.OptionalAuthMiddleware()
	moderator := auth.RequireRole(models.RoleModerator)

	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
			authRoutes.POST("/logout", requireAuth, handler.LogoutUser)
		}

		userRoutes := apiV1.Group("/users")
		userRoutes.Use(requireAuth)
		{
			userRoutes.GET("/me", handler.GetMe)
		}

		// Reads are public; a token only adds the in_collection flag.
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", optionalAuth, handler.GetGames)
			gameRoutes.GET("/search", optionalAuth, handler.SearchGames) // Must be before /:id
			gameRoutes.GET("/:id", optionalAuth, handler.GetGameByID)
			gameRoutes.POST("", requireAuth, handler.CreateGame)
			gameRoutes.PUT("/:id", requireAuth, handler.UpdateGame)
			gameRoutes.DELETE("/:id", requireAuth, handler.DeleteGame)
		}

		catalogRoutes(apiV1.Group("/categories"), models.KindCategory, requireAuth, moderator)
		catalogRoutes(apiV1.Group("/mechanics"), models.KindMechanic, requireAuth, moderator)

		proposalRoutes := apiV1.Group("/proposals/:kind")
		{
			proposalRoutes.POST("", optionalAuth, handler.SubmitProposal)
			proposalRoutes.GET("/pending", requireAuth, moderator, handler.GetPendingProposals)
			proposalRoutes.POST("/review", requireAuth, moderator, handler.ReviewProposals)
		}

		collectionRoutes := apiV1.Group("/collection")
		collectionRoutes.Use(requireAuth)
		{
			collectionRoutes.GET("", handler.GetCollection)
			collectionRoutes.POST("/lucky-shot", handler.LuckyShot)
			collectionRoutes.POST("/:gameID", handler.AddToCollection)
			collectionRoutes.DELETE("/:gameID", handler.RemoveFromCollection)
		}

		invitationRoutes := apiV1.Group("/invitations")
		invitationRoutes.Use(requireAuth)
		{
			invitationRoutes.GET("", handler.GetInvitationOverview)
			invitationRoutes.POST("", handler.CreateInvitation)
			invitationRoutes.GET("/:id", handler.GetInvitationByID)
			invitationRoutes.PUT("/:id", handler.UpdateInvitation)
			invitationRoutes.DELETE("/:id", handler.DeleteInvitation)
			invitationRoutes.GET("/:id/events", handler.StreamInvitationEvents)
			invitationRoutes.POST("/:id/join", handler.JoinInvitation)
			invitationRoutes.POST("/:id/leave", handler.LeaveInvitation)
			invitationRoutes.DELETE("/:id/players/:userID", handler.RemoveInvitationPlayer)
		}
	}

	return router
}

// catalogRoutes mounts the category or mechanic endpoints. Writes are
// moderator-only.
func catalogRoutes(group *gin.RouterGroup, kind models.CatalogKind, requireAuth, moderator gin.HandlerFunc) {
	group.GET("", handler.GetEntries(kind))
	group.GET("/:id", handler.GetEntryByID(kind))
	group.POST("", requireAuth, moderator, handler.CreateEntry(kind))
	group.PUT("/:id", requireAuth, moderator, handler.UpdateEntry(kind))
	group.DELETE("/:id", requireAuth, moderator, handler.DeleteEntry(kind))
}
