// Package format renders values for display.
package format

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime describes t relative to now, e.g. "3 hours ago". Instants
// within a minute of now read "just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d > -time.Minute && d < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Date formats t the way project cards show it, e.g. "Jun 15, 2024".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// Currency formats a whole-dollar amount with thousands separators.
func Currency(amount int) string {
	if amount < 0 {
		return "-$" + humanize.Comma(int64(-amount))
	}
	return "$" + humanize.Comma(int64(amount))
}

// Percent formats p as a percentage.
func Percent(p int) string {
	return strconv.Itoa(p) + "%"
}

// Count formats n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
