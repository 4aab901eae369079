package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enquiry_backend/internal/email"
	"enquiry_backend/internal/enquiries"
	apphttp "enquiry_backend/internal/http"
	"enquiry_backend/internal/http/router"
	"enquiry_backend/platform/config"
	"enquiry_backend/platform/db"
	"enquiry_backend/platform/httpkit"
	"enquiry_backend/platform/logger"
	"enquiry_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	shutdownTimeout   = 10 * time.Second
	smtpVerifyTimeout = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 3, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	limiter, closeLimiter := newLimiter(ctx, cfg, log)
	if closeLimiter != nil {
		defer closeLimiter()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	verifySender(ctx, log, sender)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	enquiriesModule, err := enquiries.NewModule(pool, sender, cfg, val, log)
	if err != nil {
		log.Error("failed to initialize enquiries module", "error", err)
		panic("failed to initialize enquiries module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  db.NewPoolAdapter(pool),
		Limiter: limiter,
		Errors:  httpkit.NewErrorHandler(cfg.IsDevelopment()),
		Modules: []apphttp.Module{
			enquiriesModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}

	log.Info("server stopped")
}

// newLimiter returns the Redis-backed limiter when REDIS_URL is set so every
// replica shares one budget, and the in-process limiter otherwise.
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (httpkit.Limiter, func()) {
	window, maxRequests := cfg.GetRateLimitWindow(), cfg.GetRateLimitMax()

	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Info("rate limiter initialized", "store", "memory", "window", window.String(), "max", maxRequests)
		return httpkit.NewIPRateLimiter(window, maxRequests), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		panic("invalid REDIS_URL: " + err.Error())
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable at startup, rate limiter will fail open until it recovers", "error", err)
	}

	log.Info("rate limiter initialized", "store", "redis", "window", window.String(), "max", maxRequests)
	return httpkit.NewRedisRateLimiter(client, window, maxRequests), func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}
}

// verifySender checks the SMTP relay once at startup. Failure is logged only;
// submissions still succeed and report the email as not sent.
func verifySender(ctx context.Context, log *logger.Logger, sender email.Sender) {
	smtp, ok := sender.(*email.SMTPSender)
	if !ok {
		log.Info("email delivery disabled")
		return
	}

	verifyCtx, cancel := context.WithTimeout(ctx, smtpVerifyTimeout)
	defer cancel()
	if err := smtp.Verify(verifyCtx); err != nil {
		log.Error("smtp relay verification failed", "error", err)
		return
	}
	log.Info("smtp relay ready")
}
