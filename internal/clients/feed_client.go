// internal/clients/feed_client.go
package clients

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bookstall/internal/catalog"
)

// FeedClient downloads the published catalog sheet as CSV.
type FeedClient struct {
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewFeedClient creates a feed client. A zero timeout leaves deadlines to the caller's context.
func NewFeedClient(timeout time.Duration) *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("bookstall/clients"),
	}
}

// FetchRows downloads url and returns one row per non-empty CSV record, keyed by
// the header row.
func (c *FeedClient) FetchRows(ctx context.Context, url string) ([]catalog.Row, error) {
	ctx, span := c.tracer.Start(ctx, "feed.fetch_rows")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !isSuccess(resp.StatusCode) {
		err := newStatusError(resp)
		span.RecordError(err)
		return nil, err
	}

	rows, err := ParseCSV(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("feed.rows", len(rows)))
	return rows, nil
}

// ParseCSV reads a header row followed by data records. Blank records are
// skipped, cells are trimmed and short records simply lack the missing columns.
func ParseCSV(r io.Reader) ([]catalog.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	var rows []catalog.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feed record: %w", err)
		}
		if blank(record) {
			continue
		}

		row := make(catalog.Row, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
