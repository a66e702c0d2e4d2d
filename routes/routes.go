// File: /routes/routes.go
package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"photogram-api/cache"
	"photogram-api/config"
	"photogram-api/controllers"
	"photogram-api/forms"
	"photogram-api/middleware"
	"photogram-api/services"
	"photogram-api/storage"
)

// Pinger is a backing service checked by /ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the shared resources handed to every controller.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *slog.Logger
	Tokens cache.TokenStore
	Media  storage.Storage
	Mailer services.WelcomeMailer
	// Redis is nil when revocations are kept in memory.
	Redis Pinger
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	log := deps.Log

	forms.RegisterValidators()

	// Services
	authService := services.NewAuthService(deps.DB, cfg.JWT.Secret, cfg.JWT.TTL, deps.Tokens, deps.Mailer, log)
	postService := services.NewPostService(deps.DB, deps.Media, log)
	commentService := services.NewCommentService(deps.DB, log)
	likeService := services.NewLikeService(deps.DB, log)
	profileService := services.NewProfileService(deps.DB, deps.Media, log)
	subscriptionService := services.NewSubscriptionService(deps.DB, log)

	// Controllers
	authController := controllers.NewAuthController(authService, log, cfg.IsProduction())
	postController := controllers.NewPostController(postService, log)
	commentController := controllers.NewCommentController(commentService, log)
	likeController := controllers.NewLikeController(likeService, log)
	profileController := controllers.NewProfileController(profileService, subscriptionService, log)

	r.GET("/ping", ping(deps))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if local, ok := deps.Media.(*storage.Local); ok {
		r.Static(cfg.Storage.PublicURL, local.Dir())
	}

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))
		limited.POST("/register", authController.Register)
		limited.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService, log))
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/auth/me", authController.Me)

		protected.GET("/profile", profileController.GetProfile)
		protected.POST("/profile", profileController.CreateProfile)
		protected.PUT("/profile/:id", profileController.UpdateProfile)
		protected.GET("/users/:id", profileController.GetUser)
		protected.POST("/subscribe/:user_id", profileController.Subscribe)

		protected.GET("/feed", postController.GetFeed)

		posts := protected.Group("/posts")
		{
			posts.GET("", postController.GetPosts)
			posts.POST("", postController.CreatePost)
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)

			posts.GET("/:id/comments", commentController.GetComments)
			posts.POST("/:id/comments", commentController.CreateComment)
			posts.PUT("/:id/comments/:comment_id", commentController.UpdateComment)
			posts.DELETE("/:id/comments/:comment_id", commentController.DeleteComment)
		}

		protected.POST("/like/:post_id", likeController.LikePost)
		protected.POST("/like/:post_id/:comment_id", likeController.LikeComment)
	}
}

// ping reports healthy only when the database and, if configured, Redis answer.
func ping(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true

		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			deps.Log.Error("Database ping failed", slog.String("error", err.Error()))
			checks["database"] = "unavailable"
			healthy = false
		}

		if deps.Redis != nil {
			checks["redis"] = "ok"
			if err := deps.Redis.Ping(ctx); err != nil {
				deps.Log.Error("Redis ping failed", slog.String("error", err.Error()))
				checks["redis"] = "unavailable"
				healthy = false
			}
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy", "checks": checks})
	}
}

// NewRouter builds the engine with the global middleware stack and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler(deps.Log))

	SetupRoutes(r, deps)
	return r
}
