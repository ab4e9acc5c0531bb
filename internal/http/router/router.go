package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ocenagor/admin-backend/internal/config"
	"github.com/ocenagor/admin-backend/internal/http/handlers"
	"github.com/ocenagor/admin-backend/internal/http/middleware"
	"github.com/ocenagor/admin-backend/internal/repository"
	"github.com/ocenagor/admin-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	reviewHandler *handlers.ReviewHandler,
	publicReviewHandler *handlers.PublicReviewHandler,
	statsHandler *handlers.StatsHandler,
	dashboardHandler *handlers.DashboardHandler,
	companyHandler *handlers.CompanyHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	couponHandler *handlers.CouponHandler,
	communicationHandler *handlers.CommunicationHandler,
	exportHandler *handlers.ExportHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
	userRepo *repository.UserRepository,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичный приём отзывов: сюда ходят клиенты заведений по NFC/QR.
	public := api.Group("/public")
	public.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		public.POST("/companies/:slug/reviews", publicReviewHandler.Submit)
		public.POST("/reviews/:id/complete", middleware.UUIDValidator("id"), publicReviewHandler.Complete)
	}

	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты админ-панели
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, userRepo))
	{
		protected.GET("/reviews", reviewHandler.List)
		protected.GET("/reviews/:id", middleware.UUIDValidator("id"), reviewHandler.Get)

		protected.GET("/stats/comparison", statsHandler.Comparison)
		protected.GET("/dashboard/data", dashboardHandler.Data)
		protected.POST("/dashboard/cache/invalidate", dashboardHandler.InvalidateCache)

		protected.GET("/companies", companyHandler.List)
		protected.GET("/companies/:id", middleware.UUIDValidator("id"), companyHandler.Get)
		protected.GET("/companies/:id/subscription", middleware.UUIDValidator("id"), subscriptionHandler.GetForCompany)
		protected.POST("/companies/:id/logo", middleware.UUIDValidator("id"), companyHandler.UploadLogo)

		protected.GET("/subscriptions", subscriptionHandler.List)
		protected.GET("/communications", communicationHandler.List)

		protected.GET("/export/reviews", exportHandler.Reviews)

		// Только суперадмин
		admin := protected.Group("/")
		admin.Use(middleware.RequireSuperAdmin())
		{
			admin.POST("/companies", companyHandler.Create)
			admin.POST("/users", authHandler.CreateUser)
			admin.DELETE("/reviews/:id", middleware.UUIDValidator("id"), reviewHandler.Delete)
			admin.GET("/coupons", couponHandler.List)
			admin.POST("/coupons", couponHandler.Create)
			admin.POST("/coupons/:id/deactivate", middleware.UUIDValidator("id"), couponHandler.Deactivate)
		}
	}

	return r
}
