package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paygate-be/internal/account"
	"paygate-be/internal/config"
	"paygate-be/internal/db"
	"paygate-be/internal/gateway"
	"paygate-be/internal/gateway/saman"
	"paygate-be/internal/gateway/virtual"
	"paygate-be/internal/logger"
	"paygate-be/internal/metrics"
	"paygate-be/internal/middleware"
	"paygate-be/internal/payment"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.AccountSource == config.AccountSourceDB {
		database = initDBFunc(cfg)
		defer database.Close()
	}

	handler, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	addr := ":" + cfg.AppPort
	logger.L().Info("payment gateway server running", zap.String("addr", addr))
	return startServerFunc(ctx, addr, handler)
}

// newServer composes the gateways and the HTTP stack. database is only used
// when accounts come from the database.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, error) {
	mux := http.NewServeMux()

	registry, err := newRegistry(cfg, database, mux)
	if err != nil {
		return nil, err
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway registry: %w", err)
	}

	stats := &metrics.Resolution{}
	provider := gateway.NewProvider(registry,
		gateway.WithConcurrency(cfg.ResolveConcurrency),
		gateway.WithMetrics(stats),
	)

	var guards []func(http.Handler) http.Handler
	if cfg.JWTSecret != "" {
		guards = append(guards, middleware.RequireMerchant)
	} else {
		logger.L().Warn("JWT_SECRET is empty, payment API is open")
	}
	payment.NewHandler(payment.NewService(provider), provider.Stats).RegisterRoutes(mux, guards...)

	return setupRouter(ctx, cfg, mux), nil
}

func newRegistry(cfg *config.Config, database *sql.DB, mux *http.ServeMux) (*gateway.Registry, error) {
	registry := gateway.NewRegistry()

	sources, err := samanSources(cfg, database)
	if err != nil {
		return nil, err
	}
	samanCfg := saman.Config{
		TokenURL:       cfg.SamanTokenURL,
		PaymentPageURL: cfg.SamanPaymentPageURL,
		UseGetMethod:   cfg.SamanUseGetMethod,
	}
	registry.Register(gateway.Descriptor{
		Name: saman.Name,
		Resolve: gateway.Lazy(saman.Name, func() (gateway.Gateway, error) {
			return saman.New(samanCfg, saman.NewAccountProvider(sources...)), nil
		}),
	})

	if cfg.VirtualEnabled {
		vgw, err := virtual.New(cfg.VirtualPaymentURL)
		if err != nil {
			return nil, err
		}
		mux.Handle("GET "+vgw.PagePath(), vgw)
		registry.Register(gateway.Descriptor{Name: virtual.Name, Resolve: gateway.Instance(vgw)})
	}

	return registry, nil
}

func samanSources(cfg *config.Config, database *sql.DB) ([]account.Source[saman.Account], error) {
	switch cfg.AccountSource {
	case config.AccountSourceDB:
		if database == nil {
			return nil, errors.New("ACCOUNT_SOURCE=db needs a database")
		}
		repo := account.NewRepository(database)
		return []account.Source[saman.Account]{
			account.NewRepositorySource(repo, saman.Name, saman.DecodeAccount),
		}, nil
	default:
		if cfg.SamanTerminalID == "" {
			logger.L().Warn("SAMAN_TERMINAL_ID is empty, Saman has no accounts")
			return nil, nil
		}
		return []account.Source[saman.Account]{
			account.StaticSource[saman.Account]{{
				Name:       cfg.SamanAccountName,
				TerminalID: cfg.SamanTerminalID,
				Password:   cfg.SamanPassword,
			}},
		}, nil
	}
}

// setupRouter wraps mux, outermost first: request id, access log, merchant
// auth, rate limit.
func setupRouter(ctx context.Context, cfg *config.Config, mux *http.ServeMux) http.Handler {
	var h http.Handler = mux
	h = middleware.NewLimiter(ctx, cfg.InternalSecretKey).Middleware(h)
	if cfg.JWTSecret != "" {
		h = middleware.Auth([]byte(cfg.JWTSecret))(h)
	}
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.L().Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}
