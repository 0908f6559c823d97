package domain

import "context"

// SiteFetcher retrieves beach sites, optionally filtered by name.
type SiteFetcher interface {
	// Fetch returns every site when names is empty, otherwise exactly the
	// named sites in upstream order.
	Fetch(ctx context.Context, names ...string) ([]Site, error)
}
