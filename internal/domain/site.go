package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection is the top-level GeoJSON document returned by the feed.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature as received on the wire. Properties and
// Geometry are kept raw so that a missing key can be told apart from a null
// value during mapping.
type Feature struct {
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Site is the normalized representation of one monitored beach.
// Pointer fields are nil when the feed reports no value.
type Site struct {
	ID                               string          `json:"id"`
	Name                             string          `json:"name"`
	PollutionForecast                *string         `json:"pollution_forecast"`
	PollutionForecastTimestamp       *time.Time      `json:"pollution_forecast_timestamp"`
	LatestResult                     *string         `json:"latest_result"`
	LatestResultRating               *int            `json:"latest_result_rating"`
	LatestResultObservationTimestamp *time.Time      `json:"latest_result_observation_timestamp"`
	Geometry                         json.RawMessage `json:"geometry"`
}

// Point decodes the site geometry and returns it when it is a GeoJSON Point.
func (s Site) Point() (orb.Point, bool) {
	if len(s.Geometry) == 0 {
		return orb.Point{}, false
	}
	g, err := geojson.UnmarshalGeometry(s.Geometry)
	if err != nil || g == nil || g.Coordinates == nil {
		return orb.Point{}, false
	}
	p, ok := g.Coordinates.(orb.Point)
	return p, ok
}

// Snapshot is the result of one fetch as handed to outer surfaces.
type Snapshot struct {
	ID        string    `json:"id"`
	FetchedAt time.Time `json:"fetched_at"`
	Requested []string  `json:"requested,omitempty"`
	Sites     []Site    `json:"sites"`
}

// NewSnapshot stamps a fetch result with a fresh ID and the current time.
func NewSnapshot(requested []string, sites []Site) Snapshot {
	if sites == nil {
		sites = []Site{}
	}
	return Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: clock.Now().UTC(),
		Requested: requested,
		Sites:     sites,
	}
}

// RatingLabel returns the Beachwatch description for a star rating.
func RatingLabel(rating int) string {
	switch rating {
	case 4:
		return "Good"
	case 3:
		return "Fair"
	case 2:
		return "Poor"
	case 1:
		return "Very poor"
	default:
		return "Unknown"
	}
}
