// internal/clients/errors.go
package clients

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept for the error message.
const maxErrorBody = 4 << 10

// StatusError reports a non-2xx response from an upstream.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected response: %s", e.Status)
	}
	return fmt.Sprintf("unexpected response: %s: %s", e.Status, e.Body)
}

func newStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
