package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamatos3/roamer-api/config"
	"github.com/iamatos3/roamer-api/controllers"
	"github.com/iamatos3/roamer-api/middleware"
	"github.com/iamatos3/roamer-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)

	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.DELETE("/logout", middleware.AuthRequired(db), authController.Logout)
	authGroup.PATCH("/password", middleware.AuthRequired(db), authController.ChangePassword)
	authGroup.GET("/me", middleware.AuthRequired(db), authController.Me)

	posts := r.Group("/posts")
	posts.Use(middleware.AuthRequired(db))
	posts.GET("", postController.Index)
	posts.GET("/:id", postController.Show)
	posts.POST("", postController.Create)
	posts.PATCH("/:id", postController.Update)
	posts.DELETE("/:id", postController.Destroy)

	r.NoRoute(func(ctx *gin.Context) {
		utils.RespondError(ctx, utils.NewNotFoundError("route", ctx.Request.URL.Path))
	})

	return r
}
