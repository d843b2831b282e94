package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/project-dashboard/internal/format"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"now", now, "just now"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"days", now.Add(-2 * 24 * time.Hour), "2 days ago"},
		{"future", now.Add(2 * time.Hour), "2 hours from now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.RelativeTime(tt.t, now))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Jun 15, 2024", format.Date(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$0", format.Currency(0))
	assert.Equal(t, "$50,000", format.Currency(50000))
	assert.Equal(t, "$149,999", format.Currency(149999))
	assert.Equal(t, "-$1,200", format.Currency(-1200))
}

func TestPercentAndCount(t *testing.T) {
	assert.Equal(t, "75%", format.Percent(75))
	assert.Equal(t, "1,234", format.Count(1234))
}
