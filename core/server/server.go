package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"planwise-api/core/cache"
	"planwise-api/core/config"
	"planwise-api/core/credential"
	"planwise-api/core/database"
	"planwise-api/core/logger"
	"planwise-api/core/middleware"
	"planwise-api/core/queue"
	"planwise-api/core/utils"
	"planwise-api/modules/availability"
	"planwise-api/modules/counter"
	"planwise-api/modules/group"
	"planwise-api/modules/overlap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run loads configuration, connects the stores, mounts every module and
// serves until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.App.LogLevel, cfg.App.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	var redisCache cache.Cache
	if cfg.Redis.Enabled {
		rc, err := cache.InitRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		redisCache = rc
	}

	var enqueuer queue.Enqueuer = queue.Noop{}
	if cfg.Queue.Enabled {
		client := queue.NewClient(cfg.Redis)
		defer client.Close()
		enqueuer = client
	}

	ipExtractor, err := middleware.IPExtractor(cfg.Security.TrustedProxies)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = ipExtractor
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())

	tokens := utils.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL, cfg.App.Name)
	mw := middleware.NewMiddleware(tokens)
	limiter := middleware.RateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
	timeout := cfg.Database.QueryTimeout

	v1 := e.Group("/api/v1")

	overlapModule := overlap.New(redisCache, cfg.Redis.OverlapTTL, enqueuer)

	groupSvc := group.Init(v1, group.Deps{
		DB:       db,
		Hasher:   credential.NewBcryptHasher(cfg.Security.BcryptCost),
		Tokens:   tokens,
		Notifier: overlapModule.Invalidator,
		Timeout:  timeout,
	}, mw, limiter)

	availabilitySvc := availability.Init(v1, availability.Deps{
		DB:       db,
		Groups:   groupSvc,
		Notifier: overlapModule.Invalidator,
		Location: cfg.App.Location(),
		Timeout:  timeout,
	}, mw, limiter)

	overlapModule.Init(v1, groupSvc, availabilitySvc, timeout, mw)
	counter.Init(v1, db, timeout, mw)

	e.GET("/health", healthHandler(db, redisCache))

	if cfg.Queue.Enabled {
		worker := queue.NewWorker(cfg.Redis, cfg.Queue.Concurrency)
		overlapModule.RegisterWorker(worker)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("starting worker: %w", err)
		}
		defer worker.Shutdown()
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Info("Server:Start", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Server:Shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func healthHandler(db database.IDatabase, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "database": "ok"}
		code := http.StatusOK

		if err := db.PingContext(reqCtx); err != nil {
			logger.Warn("Server:Health:Database", "error", err)
			status["status"], status["database"] = "degraded", "unreachable"
			code = http.StatusServiceUnavailable
		}
		if c != nil {
			status["redis"] = "ok"
			if err := c.Ping(reqCtx); err != nil {
				logger.Warn("Server:Health:Redis", "error", err)
				status["status"], status["redis"] = "degraded", "unreachable"
				code = http.StatusServiceUnavailable
			}
		}

		return ctx.JSON(code, status)
	}
}
