//go:build beachwatch

package beachwatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/couchcryptid/beachwatch/internal/config"
	"github.com/couchcryptid/beachwatch/internal/domain"
	"github.com/couchcryptid/beachwatch/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the live Beachwatch API.
// Run with: go test -tags=beachwatch ./internal/adapter/beachwatch/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    config.DefaultBeachwatchURL,
		userAgent:  "beachwatch-smoke/1.0",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_FetchNamed(t *testing.T) {
	c := smokeClient(t)

	sites, err := c.Fetch(context.Background(), "Bondi Beach")
	require.NoError(t, err)
	require.Len(t, sites, 1)

	assert.Equal(t, "Bondi Beach", sites[0].Name)
	assert.NotEmpty(t, sites[0].ID)
	p, ok := sites[0].Point()
	require.True(t, ok)
	assert.InDelta(t, -33.89, p.Lat(), 0.1, "lat should be near Bondi")
	assert.InDelta(t, 151.27, p.Lon(), 0.1, "lon should be near Bondi")
}

func TestSmoke_FetchAll(t *testing.T) {
	c := smokeClient(t)

	sites, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Greater(t, len(sites), 10)
}

func TestSmoke_FetchNonexistent(t *testing.T) {
	c := smokeClient(t)

	_, err := c.Fetch(context.Background(), "Bondi Beach", "Goose Beach")
	var unresolved *domain.UnresolvedSiteError
	require.True(t, errors.As(err, &unresolved), "got %v", err)
	assert.Equal(t, []string{"Goose Beach"}, unresolved.Names)
}
