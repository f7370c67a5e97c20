// Package reldate renders note timestamps the way the notes list shows them:
// a relative distance for today, "Yesterday", or a short calendar date.
package reldate

import (
	"fmt"
	"math"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// DateLayout is used for anything older than yesterday.
const DateLayout = "Jan 2, 2006"

const (
	minutesInHour = 60
	minutesInDay  = 24 * minutesInHour
)

// Format formats t relative to now. Day boundaries are taken in now's location.
func Format(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return Distance(t, now)
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Format(DateLayout)
	}
}

// ParseAndFormat parses an RFC 3339 timestamp (or a bare date) and formats it.
func ParseAndFormat(value string, now time.Time) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return Format(t, now), nil
}

// Parse accepts the timestamp formats notes are stored with.
func Parse(value string) (time.Time, error) {
	return core.ParseTimeValue(value)
}

// Distance describes how far t is from now in words, with an "ago" or "in"
// marker: "less than a minute ago", "5 minutes ago", "in about 2 hours".
func Distance(t, now time.Time) string {
	diff := now.Sub(t)
	future := diff < 0
	if future {
		diff = -diff
	}

	minutes := int(math.Round(diff.Seconds() / 60))
	var words string
	switch {
	case minutes == 0:
		words = "less than a minute"
	case minutes == 1:
		words = "1 minute"
	case minutes < 45:
		words = fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		words = "about 1 hour"
	case minutes < minutesInDay:
		words = fmt.Sprintf("about %d hours", int(math.Round(float64(minutes)/minutesInHour)))
	case minutes < 42*minutesInHour:
		words = "1 day"
	default:
		words = fmt.Sprintf("%d days", int(math.Round(float64(minutes)/minutesInDay)))
	}

	if future {
		return "in " + words
	}
	return words + " ago"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
