package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scout/internal/config"
	"github.com/kailas-cloud/scout/internal/domain/catalog"
	logpkg "github.com/kailas-cloud/scout/internal/logger"
	"github.com/kailas-cloud/scout/internal/metrics"
	"github.com/kailas-cloud/scout/internal/ratelimit"
	rlRedis "github.com/kailas-cloud/scout/internal/ratelimit/redis"
	chiTransport "github.com/kailas-cloud/scout/internal/transport/chi"
	openaiGw "github.com/kailas-cloud/scout/internal/transport/openai"
	healthuc "github.com/kailas-cloud/scout/internal/usecase/health"
	scoutuc "github.com/kailas-cloud/scout/internal/usecase/scout"
	"github.com/kailas-cloud/scout/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("model", cfg.Model.Name),
		zap.String("rate_limit_store", cfg.RateLimit.Store),
	)

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// The catalog is sealed here and never mutated afterwards.
	cat := catalog.Default()
	logger.Info("Catalog loaded", zap.Int("items", cat.Len()))

	// Build rate limiter based on store driver
	window := time.Duration(cfg.RateLimit.WindowSec) * time.Second
	var limiter ratelimit.Limiter
	var storePinger healthuc.StorePinger
	switch cfg.RateLimit.Store {
	case "memory":
		limiter = ratelimit.NewFixedWindow(ratelimit.Config{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      window,
		})
	case "redis":
		redisLimiter, err := rlRedis.New(rlRedis.Config{
			Addrs:       cfg.RateLimit.Addrs,
			Password:    cfg.RateLimit.Password,
			KeyPrefix:   cfg.RateLimit.KeyPrefix,
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      window,
		})
		if err != nil {
			logger.Fatal("Failed to create redis rate limiter", zap.Error(err))
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
		storePinger = redisLimiter
	default:
		logger.Fatal("Unknown rate limit store", zap.String("store", cfg.RateLimit.Store))
	}

	// Model gateway — requires the provider credential
	gateway := openaiGw.NewGateway(&openaiGw.Config{
		APIKey:      cfg.Model.APIKey,
		BaseURL:     cfg.Model.BaseURL,
		Model:       cfg.Model.Name,
		Temperature: cfg.Model.Temperature,
		MaxTokens:   cfg.Model.MaxOutputTokens,
		Timeout:     time.Duration(cfg.Model.TimeoutSec) * time.Second,
		Provider:    cfg.Model.Provider,
		Logger:      logger,
	})

	searchSvc, err := scoutuc.New(cat, gateway)
	if err != nil {
		logger.Fatal("Failed to create search service", zap.Error(err))
	}

	healthSvc := healthuc.New(gateway, storePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(limiter, logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						// net/http aborts the response on this sentinel; let it through.
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					// Headers already sent: too late to report the error.
					if ww.Status() != 0 {
						return
					}
					ww.Header().Set("Content-Type", "application/json")
					ww.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(ww).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
