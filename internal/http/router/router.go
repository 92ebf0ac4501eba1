package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/config"
	"github.com/gigflow/gigflow-backend/internal/http/handlers"
	"github.com/gigflow/gigflow-backend/internal/http/middleware"
	"github.com/gigflow/gigflow-backend/internal/service"
)

// Handlers собирает все HTTP хэндлеры приложения.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Gigs   *handlers.GigHandler
	Bids   *handlers.BidHandler
	WS     *handlers.WSHandler
	Health *handlers.HealthHandler
}

// New настраивает gin.Engine со всеми маршрутами и middleware.
func New(cfg *config.Config, tokens *service.TokenManager, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		// Логин и регистрация под rate limit для защиты от перебора.
		limited := auth.Group("")
		limited.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
		{
			limited.POST("/register", h.Auth.Register)
			limited.POST("/login", h.Auth.Login)
			limited.POST("/refresh", h.Auth.Refresh)
		}

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.POST("/logout", h.Auth.Logout)
			protected.GET("/me", h.Auth.Me)
		}
	}

	api.GET("/ws", h.WS.Handle)

	gigs := api.Group("/gigs")
	{
		gigs.GET("", h.Gigs.List)
		gigs.GET("/my-gigs", middleware.AuthMiddleware(tokens), h.Gigs.ListMine)
		gigs.GET("/:id", middleware.UUIDValidator("id"), h.Gigs.Get)

		protected := gigs.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.POST("", h.Gigs.Create)
			protected.PUT("/:id", middleware.UUIDValidator("id"), h.Gigs.Update)
			protected.DELETE("/:id", middleware.UUIDValidator("id"), h.Gigs.Delete)
		}
	}

	bids := api.Group("/bids")
	bids.Use(middleware.AuthMiddleware(tokens))
	{
		bids.POST("", h.Bids.Create)
		bids.GET("/my-bids", h.Bids.ListMine)
		bids.GET("/:gigId", middleware.UUIDValidator("gigId"), h.Bids.ListByGig)
		bids.PATCH("/:bidId/hire", middleware.UUIDValidator("bidId"), h.Bids.Hire)
	}

	return r
}
