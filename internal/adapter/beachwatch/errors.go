package beachwatch

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 512

// TransportError reports an HTTP error status or a failed round trip.
// Exactly one of StatusCode or Err is set.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("beachwatch request %s: %v", e.URL, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("beachwatch API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("beachwatch API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

func newStatusError(url string, resp *http.Response) *TransportError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &TransportError{
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
