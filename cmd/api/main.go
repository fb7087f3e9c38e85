package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/habitflow/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/habitflow/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitflow/internal/adapters/repository"
	"github.com/comitanigiacomo/habitflow/internal/config"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
	"github.com/comitanigiacomo/habitflow/internal/logger"
)

// @title                       Habitflow API
// @version                     1.0
// @description                 Habit and task tracking with streaks and achievements.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(config.NewFlagSet("habitflow-api"), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File, JSON: cfg.Log.JSON}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("habitflow running", "addr", srv.Addr, "storage", cfg.Storage.Driver, "timezone", cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		return
	}

	logger.Info("server stopped gracefully")
}

type application struct {
	router *gin.Engine
	users  *services.UserService
	tokens *services.TokenService

	db    *sqlx.DB
	redis *redis.Client
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	startTime := time.Now()
	app := &application{}

	dsn := cfg.DSN()
	if cfg.Storage.Driver == repository.DriverSQLite && cfg.Storage.DSN == "" {
		dsn = repository.SQLiteDSN(dsn)
	}

	store, db, err := repository.Open(ctx, cfg.Storage.Driver, dsn)
	if err != nil {
		return nil, err
	}
	app.db = db

	var stateCache domain.StateCache
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = rdb
		stateCache = cache.NewRedisStateCache(rdb, cfg.Redis.StateTTL)
		logger.Info("redis connected", "host", cfg.Redis.Host, "db", cfg.Redis.DB)
	}

	achievements := services.NewAchievementService(store)
	seeded, err := achievements.SeedCatalog(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	if seeded > 0 {
		logger.Info("achievement catalog seeded", "added", seeded)
	}

	habitService := services.NewHabitService(store, achievements, stateCache)
	entryService := services.NewEntryService(store, services.NewStreakTracker(), achievements, services.NoopSharedHabitHook{}, stateCache)
	taskService := services.NewTaskService(store, achievements, stateCache)
	stateService := services.NewStateService(store, stateCache)
	statsService := services.NewStatsService(store)
	app.users = services.NewUserService(store)
	app.tokens = services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, store.Repos().Users)

	clock := adapterHTTP.Clock{Location: cfg.Location()}

	app.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StateHandler:       adapterHTTP.NewStateHandler(stateService, clock),
		HabitHandler:       adapterHTTP.NewHabitHandler(habitService, entryService, statsService, clock),
		TaskHandler:        adapterHTTP.NewTaskHandler(taskService, clock),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievements),
		UserHandler:        adapterHTTP.NewUserHandler(app.users),
		TokenService:       app.tokens,
		DB:                 db,
		Redis:              app.redis,
		RateLimit:          adapterHTTP.RateLimit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
		StartTime:          startTime,
	})

	return app, nil
}

func (a *application) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("closing redis", "err", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Warn("closing database", "err", err)
		}
	}
}
