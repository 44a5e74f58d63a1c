package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
	"github.com/mmynk/splitledger/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Interceptors run in order, so auth goes first to put the user ID in
	// the context the logger sees.
	var ledgerInterceptors []connect.Interceptor
	if cfg.AuthEnabled {
		ledgerInterceptors = append(ledgerInterceptors, middleware.RequireAuth(jwtManager))
	} else {
		logger.Warn("Authentication disabled, every ledger endpoint is public")
	}
	ledgerInterceptors = append(ledgerInterceptors, middleware.LoggingInterceptor(logger), metrics.Interceptor())
	ledgerOpts := connect.WithInterceptors(ledgerInterceptors...)
	authOpts := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
		metrics.Interceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewPersonServiceHandler(service.NewPersonService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewCategoryServiceHandler(service.NewCategoryService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewPaymentServiceHandler(service.NewPaymentService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewClosureServiceHandler(service.NewClosureService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewBalanceServiceHandler(service.NewBalanceService(store, logger), ledgerOpts))
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), authOpts))

	var reports http.Handler = service.NewReportService(store, logger).Handler()
	if cfg.AuthEnabled {
		reports = middleware.RequireAuthHTTP(jwtManager)(reports)
	}
	mux.Handle("/reports/", reports)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.LogRequests(logger)(middleware.CORS(cfg.CORSOrigin)(mux))

	// h2c serves HTTP/2 without TLS, which Connect clients use for streaming.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.Addr(), "auth_enabled", cfg.AuthEnabled)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
