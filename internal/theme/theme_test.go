package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		progress int
		filled   int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-20, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, 10)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "progress %d", tt.progress)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "progress %d", tt.progress)
	}
}
