package main

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/couchcryptid/beachwatch/internal/domain"
)

const dateLayout = "2006-01-02 15:04 MST"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// sydney is used to display timestamps; the feed mixes UTC and +10:00.
var sydney = loadSydney()

func loadSydney() *time.Location {
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		return time.UTC
	}
	return loc
}

func renderTable(sites []domain.Site) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SITE", "FORECAST", "RESULT", "RATING", "SAMPLED", "LAT", "LON").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, s := range sites {
		lat, lon := "-", "-"
		if p, ok := s.Point(); ok {
			lat = fmt.Sprintf("%.5f", p.Lat())
			lon = fmt.Sprintf("%.5f", p.Lon())
		}
		t.Row(
			s.Name,
			orDash(s.PollutionForecast),
			orDash(s.LatestResult),
			formatRating(s.LatestResultRating),
			formatTime(s.LatestResultObservationTimestamp),
			lat,
			lon,
		)
	}
	return t.String()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func formatRating(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d (%s)", *r, domain.RatingLabel(*r))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(sydney).Format(dateLayout)
}
