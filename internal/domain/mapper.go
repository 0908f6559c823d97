package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Property keys used by the Beachwatch GeoJSON feed.
const (
	propID                = "id"
	propSiteName          = "siteName"
	propPollutionForecast = "pollutionForecast"
	propForecastTimestamp = "pollutionForecastTimeStamp"
	propLatestResult      = "latestResult"
	propLatestRating      = "latestResultRating"
	propObservationDate   = "latestResultObservationDate"
)

var (
	errUnexpectedType = errors.New("unexpected JSON type")
	errOutOfRange     = errors.New("out of range")
)

// MapFeature converts one raw GeoJSON feature into a Site.
//
// A feature must carry both a properties object and a geometry key; either
// missing, or properties that are not an object, yields a
// *MalformedFeatureError. Optional properties that are
// absent or null map to nil. Properties that are present but cannot be
// coerced yield a *FieldError.
func MapFeature(f Feature) (Site, error) {
	if isNull(f.Properties) {
		return Site{}, &MalformedFeatureError{Key: "properties"}
	}
	if len(f.Geometry) == 0 {
		return Site{}, &MalformedFeatureError{Key: "geometry"}
	}

	var props map[string]json.RawMessage
	if err := json.Unmarshal(f.Properties, &props); err != nil {
		return Site{}, &MalformedFeatureError{Key: "properties", Reason: "is not an object"}
	}

	id, err := optionalString(props, propID)
	if err != nil {
		return Site{}, err
	}
	name, err := optionalString(props, propSiteName)
	if err != nil {
		return Site{}, err
	}
	forecast, err := optionalString(props, propPollutionForecast)
	if err != nil {
		return Site{}, err
	}
	forecastAt, err := optionalTimestamp(props, propForecastTimestamp)
	if err != nil {
		return Site{}, err
	}
	result, err := optionalString(props, propLatestResult)
	if err != nil {
		return Site{}, err
	}
	rating, err := optionalRating(props, propLatestRating)
	if err != nil {
		return Site{}, err
	}
	observedAt, err := optionalTimestamp(props, propObservationDate)
	if err != nil {
		return Site{}, err
	}

	return Site{
		ID:                               deref(id),
		Name:                             deref(name),
		PollutionForecast:                forecast,
		PollutionForecastTimestamp:       forecastAt,
		LatestResult:                     result,
		LatestResultRating:               rating,
		LatestResultObservationTimestamp: observedAt,
		Geometry:                         append(json.RawMessage(nil), f.Geometry...),
	}, nil
}

// MapFeatures maps every feature in order. The first failure aborts the
// whole call and no partial result is returned.
func MapFeatures(features []Feature) ([]Site, error) {
	sites := make([]Site, 0, len(features))
	for i, f := range features {
		site, err := MapFeature(f)
		if err != nil {
			return nil, fmt.Errorf("map feature %d: %w", i, err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// SiteName reads the siteName property of a raw feature without validating
// the rest of it. The second result is false when no name can be read.
func SiteName(f Feature) (string, bool) {
	if isNull(f.Properties) {
		return "", false
	}
	var props struct {
		SiteName *string `json:"siteName"`
	}
	if err := json.Unmarshal(f.Properties, &props); err != nil || props.SiteName == nil {
		return "", false
	}
	return *props.SiteName, true
}

func optionalString(props map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := props[key]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &FieldError{Field: key, Value: string(raw), Err: errUnexpectedType}
	}
	return &s, nil
}

// optionalRating accepts a JSON number or a numeric string. Non-integral
// numbers are truncated toward zero.
func optionalRating(props map[string]json.RawMessage, key string) (*int, error) {
	raw, ok := props[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, &FieldError{Field: key, Value: string(raw), Err: err}
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return &n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, &FieldError{Field: key, Value: string(raw), Err: err}
		}
		f = math.Trunc(f)
		// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
		if f < math.MinInt || f >= math.MaxInt {
			return nil, &FieldError{Field: key, Value: string(raw), Err: errOutOfRange}
		}
		n := int(f)
		return &n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, &FieldError{Field: key, Value: string(raw), Err: err}
		}
		return &n, nil
	default:
		return nil, &FieldError{Field: key, Value: string(raw), Err: errUnexpectedType}
	}
}

func optionalTimestamp(props map[string]json.RawMessage, key string) (*time.Time, error) {
	s, err := optionalString(props, key)
	if err != nil || s == nil {
		return nil, err
	}
	ts, err := ParseTimestamp(*s)
	if err != nil {
		return nil, &FieldError{Field: key, Value: strconv.Quote(*s), Err: err}
	}
	return &ts, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
