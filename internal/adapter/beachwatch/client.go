package beachwatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/beachwatch/internal/domain"
	"github.com/couchcryptid/beachwatch/internal/observability"
)

// siteNameParam is the query key the API filters on. It may be repeated.
const siteNameParam = "site_name"

var _ domain.SiteFetcher = (*Client)(nil)

var errBuildRequest = errors.New("create request")

// Client implements domain.SiteFetcher using the Beachwatch GeoJSON API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Beachwatch client. timeout bounds every request.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch returns the named sites, or every site when no names are given.
//
// With names, the response must contain exactly one feature per requested
// name; otherwise a *domain.UnresolvedSiteError lists the names that were not
// returned. HTTP error statuses and network failures surface as
// *TransportError. A feature that cannot be mapped fails the whole call.
func (c *Client) Fetch(ctx context.Context, names ...string) ([]domain.Site, error) {
	filtered := strconv.FormatBool(len(names) > 0)
	start := time.Now()

	fc, err := c.doRequest(ctx, names)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(filtered, fetchOutcome(err)).Inc()
		return nil, err
	}
	c.metrics.SitesReturned.Observe(float64(len(fc.Features)))

	if err := domain.CheckResolved(names, fc.Features); err != nil {
		c.metrics.FetchRequests.WithLabelValues(filtered, observability.OutcomeUnresolved).Inc()
		c.logger.Debug("requested sites not found", "requested", names, "returned", len(fc.Features), "error", err)
		return nil, err
	}

	sites, err := domain.MapFeatures(fc.Features)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(filtered, observability.OutcomeMapping).Inc()
		c.logger.Error("beachwatch response does not match expected schema", "error", err)
		return nil, err
	}

	c.metrics.FetchRequests.WithLabelValues(filtered, observability.OutcomeSuccess).Inc()
	c.logger.Debug("fetched sites", "requested", len(names), "returned", len(sites), "duration", time.Since(start))
	return sites, nil
}

func (c *Client) doRequest(ctx context.Context, names []string) (domain.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(names), nil)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("%w: %w", errBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeatureCollection{}, &TransportError{URL: req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		return domain.FeatureCollection{}, newStatusError(req.URL.Redacted(), resp)
	}

	var fc domain.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("decode response: %w", err)
	}
	return fc, nil
}

func fetchOutcome(err error) string {
	var transportErr *TransportError
	switch {
	case errors.As(err, &transportErr):
		return observability.OutcomeTransport
	case errors.Is(err, errBuildRequest):
		return observability.OutcomeRequest
	default:
		return observability.OutcomeDecode
	}
}

// requestURL appends one site_name parameter per name, duplicates and order
// preserved.
func (c *Client) requestURL(names []string) string {
	if len(names) == 0 {
		return c.baseURL
	}
	params := url.Values{siteNameParam: append([]string(nil), names...)}
	sep := "?"
	if u, err := url.Parse(c.baseURL); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return c.baseURL + sep + params.Encode()
}
