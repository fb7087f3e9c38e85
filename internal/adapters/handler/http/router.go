package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/habitflow/docs"
	"github.com/comitanigiacomo/habitflow/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type RouterDependencies struct {
	StateHandler       *StateHandler
	HabitHandler       *HabitHandler
	TaskHandler        *TaskHandler
	AchievementHandler *AchievementHandler
	UserHandler        *UserHandler
	TokenService       *services.TokenService
	// DB is nil when the in-memory store is used.
	DB        *sqlx.DB
	Redis     *redis.Client
	RateLimit RateLimit
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit.Requests > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit.Requests, deps.RateLimit.Window))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "memory"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.StateHandler.RegisterRoutes(apiV1)
		deps.HabitHandler.RegisterRoutes(apiV1)
		deps.TaskHandler.RegisterRoutes(apiV1)
		deps.AchievementHandler.RegisterRoutes(apiV1)
		deps.UserHandler.RegisterRoutes(apiV1)
	}

	return router
}
