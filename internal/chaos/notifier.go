// Package chaos injects faults into outgoing order notifications so the
// checkout failure paths can be rehearsed against a live storefront.
package chaos

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bookstall/internal/checkout"
	"bookstall/internal/config"
	"bookstall/internal/logging"
)

var ErrInjectedFailure = errors.New("chaos: injected notifier failure")

// Notifier wraps a checkout.Notifier with latency and failure injection.
type Notifier struct {
	next        checkout.Notifier
	failureRate float64 // 0.0 to 1.0 (fraction of calls failed)
	latency     time.Duration
	roll        func() float64
	logger      *zap.Logger
	tracer      trace.Tracer
	injected    metric.Int64Counter
}

func WrapNotifier(next checkout.Notifier, cfg config.ChaosConfig, logger *zap.Logger) *Notifier {
	counter, err := otel.Meter("bookstall/chaos").Int64Counter("chaos.injected_faults")
	if err != nil {
		counter = noop.Int64Counter{}
	}
	return &Notifier{
		next:        next,
		failureRate: cfg.NotifierFailureRate,
		latency:     cfg.NotifierLatency,
		roll:        rand.Float64,
		logger:      logging.OrNop(logger),
		tracer:      otel.Tracer("bookstall/chaos"),
		injected:    counter,
	}
}

func (n *Notifier) Notify(ctx context.Context, order checkout.OrderRequest) error {
	ctx, span := n.tracer.Start(ctx, "chaos.notify",
		trace.WithAttributes(
			attribute.Float64("chaos.failure_rate", n.failureRate),
			attribute.Int64("chaos.latency_ms", n.latency.Milliseconds()),
		),
	)
	defer span.End()

	if n.latency > 0 {
		span.AddEvent("injecting_latency")
		n.record(ctx, "latency")
		timer := time.NewTimer(n.latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	if n.failureRate > 0 && n.roll() < n.failureRate {
		span.AddEvent("injecting_failure")
		span.RecordError(ErrInjectedFailure)
		n.record(ctx, "failure")
		n.logger.Warn("injected notifier failure", zap.String("order_id", order.OrderID))
		return ErrInjectedFailure
	}

	return n.next.Notify(ctx, order)
}

func (n *Notifier) record(ctx context.Context, kind string) {
	n.injected.Add(ctx, 1, metric.WithAttributes(attribute.String("fault", kind)))
}
