package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-be/internal/address"
	"checkout-be/internal/billing"
	"checkout-be/internal/checkout"
	"checkout-be/internal/config"
	"checkout-be/internal/db"
	"checkout-be/internal/graph"
	"checkout-be/internal/logger"
	"checkout-be/internal/middleware"
	"checkout-be/internal/transport"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	addr := ":" + cfg.AppPort
	logger.L().Info("GraphQL server running",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
	)
	return startServerFunc(addr, router)
}

// newServer wires repositories, services and the GraphQL schema.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	checkoutSvc := checkout.NewService(checkout.NewRepository(database))
	addressSvc := address.NewService(address.NewRepository(database))

	resolver := &graph.Resolver{
		CheckoutSvc:   checkoutSvc,
		AddressSvc:    addressSvc,
		Sections:      billing.NewRegistry(cfg.SectionCapacity, cfg.SectionTTL),
		DefaultLocale: cfg.DefaultLocale,
	}

	srv := graph.NewServer(graph.NewSchema(resolver))

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Run(context.Background())

	api := chi.Chain(
		middleware.AuthMiddleware(cfg.JWTSecret),
		limiter.Middleware,
		transport.Middleware,
	).Handler(srv)

	return setupRouter(api, cfg.CORSAllowedOrigins)
}

func setupRouter(api http.Handler, origins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORS(origins...))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/", playground.Handler("GraphQL Playground", "/query"))
	r.Handle("/query", api)

	return r
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight
// requests.
func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.L().Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
