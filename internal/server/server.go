// Package server boots decorhub from configuration and runs the HTTP
// listener until the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/app/services"
	"github.com/shashiranjanraj/decorhub/config"
	"github.com/shashiranjanraj/decorhub/internal/kernel"
	"github.com/shashiranjanraj/decorhub/pkg/auth"
	"github.com/shashiranjanraj/decorhub/pkg/bind"
	"github.com/shashiranjanraj/decorhub/pkg/cache"
	"github.com/shashiranjanraj/decorhub/pkg/database"
	"github.com/shashiranjanraj/decorhub/pkg/logger"
	"github.com/shashiranjanraj/decorhub/pkg/middleware"
	"github.com/shashiranjanraj/decorhub/pkg/payment"
)

// ErrDefaultJWTSecret stops a production boot that would accept tokens
// signed with the placeholder secret.
var ErrDefaultJWTSecret = errors.New("server: AUTH_DRIVER=jwt in production requires a non-default JWT_SECRET")

const (
	logsCollection = "logs"
	logRetention   = 30 * 24 * time.Hour
)

// App holds the booted dependencies and their cleanup.
type App struct {
	Config  *config.Config
	Store   repositories.Store
	closers []func(context.Context) error
}

// OpenStore connects the document store selected by DB_DRIVER. With the
// mongo driver the indexes are ensured before returning.
func OpenStore(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	switch cfg.DatabaseDriver() {
	case "memory":
		logger.Warn("using in-memory store; data is lost on exit")
		app.Store = repositories.NewMemoryStore()
	default:
		conn, err := database.Connect(ctx, cfg.MongoURI(), cfg.MongoDatabase())
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, conn.Close)

		if err := repositories.EnsureIndexes(ctx, conn.DB); err != nil {
			app.Close(context.Background())
			return nil, err
		}
		app.Store = repositories.NewMongoStore(conn.DB)

		if cfg.LogToMongo() {
			h := logger.NewMongoHandler(conn.DB.Collection(logsCollection), logger.MongoOptions{
				Level:     slog.LevelInfo,
				Retention: logRetention,
			})
			logger.Init(logOptions(cfg), h)
			// The handler must flush before the client disconnects.
			app.closers = append([]func(context.Context) error{func(context.Context) error {
				h.Close()
				if n := h.Dropped(); n > 0 {
					logger.Warn("log sink dropped records", "count", n)
				}
				return nil
			}}, app.closers...)
		}
	}
	return app, nil
}

// Users returns a user service over the opened store.
func (a *App) Users() *services.UserService {
	return services.NewUserService(a.Store.Users, nil)
}

// Close releases every opened connection in order.
func (a *App) Close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			logger.Warn("shutdown: close failed", "error", err)
		}
	}
	a.closers = nil
}

// Start loads configuration, boots every dependency and serves HTTP until
// SIGINT or SIGTERM, then drains in-flight requests.
func Start() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logOptions(cfg))
	bind.MaxBodyBytes = cfg.MaxBodyBytes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		app.Close(closeCtx)
	}()

	deps, err := dependencies(ctx, app)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort(),
		Handler:           kernel.NewHTTPKernel(deps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("decorhub listening", "addr", srv.Addr, "env", cfg.AppEnv(), "store", cfg.DatabaseDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout().String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func logOptions(cfg *config.Config) logger.Options {
	return logger.Options{Env: cfg.AppEnv(), Level: cfg.LogLevel()}
}

func dependencies(ctx context.Context, app *App) (kernel.Dependencies, error) {
	cfg := app.Config

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return kernel.Dependencies{}, err
	}
	if cfg.StripeSecretKey() == "" {
		logger.Warn("STRIPE_SECRET_KEY is empty; checkout calls will fail")
	}

	return kernel.Dependencies{
		Store:    app.Store,
		Payments: payment.NewStripe(cfg.StripeSecretKey(), nil),
		Verifier: verifier,
		Limiter:  newLimiter(ctx, app),
		CORS:     middleware.DefaultCORSOptions(cfg.CORSOrigins()...),
		Checkout: services.CheckoutConfig{
			ClientDomain:      cfg.ClientDomain(),
			Currency:          cfg.CheckoutCurrency(),
			TransactionsLimit: cfg.TransactionsLimit(),
		},
	}, nil
}

func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.AuthDriver() == "jwt" {
		if cfg.IsProduction() {
			if cfg.JWTSecretIsDefault() {
				return nil, ErrDefaultJWTSecret
			}
			logger.Warn("AUTH_DRIVER=jwt in production")
		}
		return auth.NewJWTVerifier(cfg.JWTSecret()), nil
	}
	return auth.NewFirebaseVerifier(ctx, cfg.FirebaseServiceKey())
}

// newLimiter prefers the shared Redis limiter and falls back to the
// in-process one when Redis is unreachable at boot.
func newLimiter(ctx context.Context, app *App) middleware.Limiter {
	cfg := app.Config
	max, window := cfg.RateLimit(), time.Minute
	if max <= 0 {
		logger.Warn("rate limiting disabled")
		return nil
	}

	if cfg.RateLimitDriver() == "redis" {
		rdb, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr(), Password: cfg.RedisPassword()})
		if err == nil {
			app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
			return middleware.NewRedisLimiter(rdb, max, window)
		}
		logger.Warn("redis unavailable, using in-memory rate limiter", "error", err)
	}

	l := middleware.NewMemoryLimiter(max, window)
	app.closers = append(app.closers, func(context.Context) error { l.Stop(); return nil })
	return l
}
