package routes

import (
	"time"

	"teamup-service/internal/adapters/storage"
	"teamup-service/internal/api/handlers"
	"teamup-service/internal/api/middleware"
	"teamup-service/internal/config"
	"teamup-service/internal/repositories/postgres"
	"teamup-service/internal/services"
	"teamup-service/internal/websocket"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine          *gin.Engine
	wsHandler       *handlers.WSHandler
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	swipeHandler    *handlers.SwipeHandler
	matchHandler    *handlers.MatchHandler
	messageHandler  *handlers.MessageHandler
	presenceHandler *handlers.PresenceHandler
	rateLimitMW     *middleware.RateLimitMiddleware
	authMW          *middleware.AuthMiddleware
}

func NewRouter(
	hub *websocket.Hub,
	redisService *services.RedisService,
	pushService *services.PushService,
	storageClient *storage.MinIOClient,
	db *gorm.DB,
	cfg *config.Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	swipeService := services.NewSwipeService(swipeRepo, matchRepo, redisService, hub, pushService, cfg.Swipe.DailyLimit)
	matchService := services.NewMatchService(matchRepo, messageRepo, userRepo)
	messageService := services.NewMessageService(matchRepo, messageRepo, hub, pushService)
	presenceService := services.NewPresenceService(userRepo, redisService, hub)

	return &Router{
		engine:          engine,
		wsHandler:       handlers.NewWSHandler(hub),
		authHandler:     handlers.NewAuthHandler(authService),
		userHandler:     handlers.NewUserHandler(userRepo, storageClient),
		swipeHandler:    handlers.NewSwipeHandler(swipeService),
		matchHandler:    handlers.NewMatchHandler(matchService),
		messageHandler:  handlers.NewMessageHandler(messageService),
		presenceHandler: handlers.NewPresenceHandler(presenceService),
		rateLimitMW:     middleware.NewRateLimitMiddleware(redisService),
		authMW:          middleware.NewAuthMiddleware(cfg.JWT.Secret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// WebSocket endpoint; token comes from the query string because
	// browsers cannot set headers on the handshake.
	api.GET("/ws",
		r.authMW.RequireWSAuth(),
		r.wsHandler.HandleWebSocket,
	)

	// Public routes
	authRoutes := api.Group("/auth")
	authRoutes.Use(r.rateLimitMW.RateLimitIP(50, time.Minute))
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(r.authMW.RequireAuth())
	auth.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		auth.GET("/auth/me", r.authHandler.Me)

		users := auth.Group("/users")
		{
			users.POST("/avatar", r.userHandler.UploadAvatar)
		}

		swipes := auth.Group("/swipes")
		{
			swipes.POST("", r.swipeHandler.Swipe)
			swipes.GET("/status", r.swipeHandler.Status)
		}

		matches := auth.Group("/matches")
		{
			matches.GET("", r.matchHandler.List)
			matches.GET("/:matchId/messages", r.messageHandler.History)
		}

		messages := auth.Group("/messages")
		{
			messages.POST("", r.messageHandler.Send)
		}

		presence := auth.Group("/presence")
		{
			presence.PUT("/availability", r.presenceHandler.SetAvailability)
			presence.GET("/online", r.presenceHandler.OnlineUsers)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
