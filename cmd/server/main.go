package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appadvisor "github.com/tiendafacil/backend/internal/application/advisor"
	appcatalog "github.com/tiendafacil/backend/internal/application/catalog"
	appledger "github.com/tiendafacil/backend/internal/application/ledger"
	appreport "github.com/tiendafacil/backend/internal/application/report"
	appsales "github.com/tiendafacil/backend/internal/application/sales"
	appsession "github.com/tiendafacil/backend/internal/application/session"
	"github.com/tiendafacil/backend/internal/infrastructure/ai"
	"github.com/tiendafacil/backend/internal/infrastructure/config"
	"github.com/tiendafacil/backend/internal/infrastructure/logger"
	"github.com/tiendafacil/backend/internal/infrastructure/persistence/memory"
	"github.com/tiendafacil/backend/internal/infrastructure/persistence/snapshot"
	"github.com/tiendafacil/backend/internal/interfaces/http/handler"
	"github.com/tiendafacil/backend/internal/interfaces/http/middleware"
	"github.com/tiendafacil/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("store", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if err := middleware.RegisterValidations(); err != nil {
		return fmt.Errorf("register validations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	productRepo := memory.NewProductRepository()
	customerRepo := memory.NewCustomerRepository()
	saleRepo := memory.NewSaleRepository()

	productService := appcatalog.NewProductService(productRepo)
	customerService := appledger.NewCustomerService(customerRepo)
	checkoutService := appsales.NewCheckoutService(productRepo, customerRepo, saleRepo, log)
	journalService := appsales.NewJournalService(saleRepo)
	dashboardService := appreport.NewDashboardService(productRepo, customerRepo, saleRepo, cfg.Inventory.LowStockThreshold)

	handlers := router.Handlers{
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Sales:     handler.NewSalesHandler(checkoutService, journalService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	var sessionService *appsession.Service
	if cfg.Snapshot.Enabled {
		archive, err := snapshot.Open(cfg.Snapshot.Path)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		sessionService = appsession.NewService(archive, cfg.App.Name, productRepo, customerRepo, saleRepo, log)
		if err := sessionService.Restore(ctx); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		handlers.Session = handler.NewSessionHandler(sessionService)
	} else {
		log.Info("snapshot persistence disabled, store state is session-scoped")
	}

	if cfg.Advisor.Enabled {
		client, err := ai.NewGeminiClient(ctx, cfg.Advisor.Model, cfg.Advisor.Timeout)
		if err != nil {
			return fmt.Errorf("init advisor client: %w", err)
		}
		advisorService := appadvisor.NewService(client, productRepo, customerRepo, saleRepo, log)
		handlers.Advisor = handler.NewAdvisorHandler(advisorService)
		log.Info("advisor enabled", zap.String("model", cfg.Advisor.Model))
	} else {
		log.Info("advisor disabled")
	}

	engine := router.New(handlers, log, cfg.IsProduction())
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if sessionService != nil {
		if err := sessionService.Save(shutdownCtx); err != nil {
			log.Error("failed to save snapshot on shutdown", zap.Error(err))
		}
	}

	log.Info("server stopped")
	return nil
}
