package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedFeatures(names ...string) []Feature {
	features := make([]Feature, len(names))
	for i, name := range names {
		features[i] = featureWithProps(`{"siteName":"` + name + `"}`)
	}
	return features
}

func requireUnresolved(t *testing.T, err error) *UnresolvedSiteError {
	t.Helper()
	var unresolved *UnresolvedSiteError
	require.True(t, errors.As(err, &unresolved), "want *UnresolvedSiteError, got %v", err)
	return unresolved
}

func TestCheckResolved(t *testing.T) {
	t.Run("no names requested never fails", func(t *testing.T) {
		assert.NoError(t, CheckResolved(nil, nil))
		assert.NoError(t, CheckResolved(nil, namedFeatures("Bondi Beach", "Manly Beach")))
	})

	t.Run("every name returned", func(t *testing.T) {
		err := CheckResolved([]string{"Bondi Beach", "Manly Beach"}, namedFeatures("Manly Beach", "Bondi Beach"))
		assert.NoError(t, err)
	})

	t.Run("empty response", func(t *testing.T) {
		err := CheckResolved([]string{"Goose Beach"}, nil)
		unresolved := requireUnresolved(t, err)
		assert.Equal(t, []string{"Goose Beach"}, unresolved.Names)
		assert.Contains(t, err.Error(), "Goose Beach")
	})

	t.Run("one of two missing", func(t *testing.T) {
		err := CheckResolved([]string{"Bondi Beach", "Goose Beach"}, namedFeatures("Bondi Beach"))
		unresolved := requireUnresolved(t, err)
		assert.Equal(t, []string{"Goose Beach"}, unresolved.Names)
		assert.Contains(t, err.Error(), "Goose Beach")
		assert.NotContains(t, err.Error(), "Bondi Beach")
	})

	t.Run("missing names are deduplicated and sorted", func(t *testing.T) {
		err := CheckResolved([]string{"Zeta Beach", "Goose Beach", "Zeta Beach"}, nil)
		unresolved := requireUnresolved(t, err)
		assert.Equal(t, []string{"Goose Beach", "Zeta Beach"}, unresolved.Names)
	})

	t.Run("duplicate request with one feature fails on count", func(t *testing.T) {
		err := CheckResolved([]string{"Bondi Beach", "Bondi Beach"}, namedFeatures("Bondi Beach"))
		unresolved := requireUnresolved(t, err)
		assert.Empty(t, unresolved.Names)
	})

	t.Run("same-count substitution is not detected", func(t *testing.T) {
		err := CheckResolved([]string{"Goose Beach"}, namedFeatures("Bondi Beach"))
		assert.NoError(t, err)
	})

	t.Run("features without names are ignored", func(t *testing.T) {
		features := append(namedFeatures("Bondi Beach"), Feature{})
		err := CheckResolved([]string{"Bondi Beach", "Goose Beach", "Manly Beach"}, features)
		unresolved := requireUnresolved(t, err)
		assert.Equal(t, []string{"Goose Beach", "Manly Beach"}, unresolved.Names)
	})
}
