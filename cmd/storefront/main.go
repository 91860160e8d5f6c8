// cmd/storefront/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookstall/internal/cart"
	"bookstall/internal/catalog"
	"bookstall/internal/chaos"
	"bookstall/internal/checkout"
	"bookstall/internal/clients"
	"bookstall/internal/config"
	"bookstall/internal/logging"
	"bookstall/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           newStorefront(ctx, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("storefront listening",
		zap.String("port", cfg.HTTP.Port),
		zap.Bool("feed_configured", cfg.Feed.Configured()),
		zap.Bool("notifier_configured", cfg.Notifier.Configured()),
		zap.Bool("chaos_enabled", cfg.Chaos.Enabled()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	<-done
}

// newStorefront wires the catalog, cart and checkout behind one router. A failed
// initial catalog load is logged and served as the explicit failed state.
func newStorefront(ctx context.Context, cfg *config.Config, logger *zap.Logger) http.Handler {
	if !cfg.Payment.UPIConfigured() {
		logger.Warn("no UPI_ID configured, domestic buyers will be asked to request payment details from the seller")
	}

	catalogStore := catalog.NewStore()
	catalogSvc := catalog.NewService(catalogStore, clients.NewFeedClient(cfg.Feed.Timeout), cfg.Feed, logger)
	if err := catalogSvc.Refresh(ctx); err != nil {
		logger.Error("initial catalog load failed", zap.Error(err))
	}

	cartStore := cart.NewStore(logger)
	cartStore.Subscribe(func(s cart.Summary) {
		logger.Debug("cart changed", zap.Int("count", s.Count), zap.Float64("total", s.Total))
	})

	flow := checkout.NewFlow(cartStore, newNotifier(cfg, logger), checkout.Options{
		Payment:      cfg.Payment,
		DismissAfter: cfg.Checkout.DismissAfter,
		Logger:       logger,
	})

	return newRouter(cfg.HTTP, logger, catalogSvc, cartStore, flow)
}

// newNotifier returns nil when no webhook is configured, which puts checkout
// on the manual payment path.
func newNotifier(cfg *config.Config, logger *zap.Logger) checkout.Notifier {
	if !cfg.Notifier.Configured() {
		logger.Warn("no order notifier configured, orders will show manual payment instructions")
		return nil
	}
	var notifier checkout.Notifier = clients.NewNotifierClient(cfg.Notifier)
	if cfg.Chaos.Enabled() {
		logger.Warn("chaos fault injection enabled for the order notifier",
			zap.Float64("failure_rate", cfg.Chaos.NotifierFailureRate),
			zap.Duration("latency", cfg.Chaos.NotifierLatency),
		)
		notifier = chaos.WrapNotifier(notifier, cfg.Chaos, logger)
	}
	return notifier
}
