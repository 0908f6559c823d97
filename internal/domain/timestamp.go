package domain

import (
	"errors"
	"strings"
	"time"
)

var errInvalidTimestamp = errors.New("not an ISO-8601 timestamp")

// timestampLayouts lists the ISO-8601 shapes the feed has been seen to emit,
// most common first. time.Parse accepts a fractional second after the
// seconds field even when the layout omits it.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without an offset are
// interpreted as UTC. A space may be used in place of the "T" separator.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errInvalidTimestamp
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidTimestamp
}
