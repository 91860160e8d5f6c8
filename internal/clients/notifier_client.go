// internal/clients/notifier_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"bookstall/internal/checkout"
	"bookstall/internal/config"
)

// NotifierClient posts orders to the seller's webhook.
type NotifierClient struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	tracer     trace.Tracer
}

// NewNotifierClient creates a client paced at cfg.RatePerMinute requests.
func NewNotifierClient(cfg config.NotifierConfig) *NotifierClient {
	return &NotifierClient{
		url:        strings.TrimSpace(cfg.URL),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerMinute/60), 1),
		tracer:     otel.Tracer("bookstall/clients"),
	}
}

// Notify sends one order. Any transport failure or non-2xx response is an error;
// the response body of a successful call is ignored.
func (c *NotifierClient) Notify(ctx context.Context, order checkout.OrderRequest) error {
	ctx, span := c.tracer.Start(ctx, "notifier.notify",
		trace.WithAttributes(
			attribute.String("order.id", order.OrderID),
		),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("notifier rate limit: %w", err)
	}

	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to send order: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !isSuccess(resp.StatusCode) {
		err := newStatusError(resp)
		span.RecordError(err)
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
