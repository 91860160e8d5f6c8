// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bookstall/internal/config"
	"bookstall/internal/logging"
)

// service implements the Service interface.
type service struct {
	store  *Store
	feed   FeedSource
	cfg    config.FeedConfig
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService creates a new catalog service instance backed by store.
func NewService(store *Store, feed FeedSource, cfg config.FeedConfig, logger *zap.Logger) Service {
	return &service{
		store:  store,
		feed:   feed,
		cfg:    cfg,
		logger: logging.OrNop(logger),
		tracer: otel.Tracer("bookstall/catalog"),
	}
}

// Refresh reloads the whole catalog from the feed, or from the demo set when no
// feed is configured. A failed fetch leaves the catalog empty in the failed state.
func (s *service) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "catalog.refresh",
		trace.WithAttributes(
			attribute.Bool("feed.configured", s.cfg.Configured()),
		),
	)
	defer span.End()

	if !s.cfg.Configured() || s.feed == nil {
		s.logger.Warn("no feed URL configured, loading demo data")
		items := ParseRows(DemoRows())
		s.store.LoadDemo(items)
		span.SetAttributes(attribute.Int("items.loaded", len(items)))
		return nil
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	rows, err := s.feed.FetchRows(ctx, s.cfg.URL)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		s.store.Fail(err)
		span.RecordError(err)
		s.logger.Error("failed to fetch catalog feed", zap.Error(err))
		return err
	}

	items := ParseRows(rows)
	s.store.Load(items)
	span.SetAttributes(attribute.Int("items.loaded", len(items)))
	s.logger.Info("catalog loaded",
		zap.Int("items", len(items)),
		zap.Int("categories", len(s.store.Categories())),
	)
	return nil
}

// Browse returns the visible subset of the catalog.
func (s *service) Browse(search, category string) []Item {
	return Filter(s.store.Items(), search, category)
}

func (s *service) Categories() []string {
	return s.store.Categories()
}

// Lookup retrieves an item from the catalog by its identity.
func (s *service) Lookup(id string) (Item, error) {
	item, ok := s.store.Lookup(id)
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return item, nil
}

func (s *service) Status() Status {
	return s.store.Status()
}
