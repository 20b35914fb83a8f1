package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short string untouched", "MARIA", 10, "MARIA"},
		{"exact length untouched", "MARIA", 5, "MARIA"},
		{"long string shortened", "MARIA APARECIDA", 10, "MARIA A..."},
		{"accented name cut on rune boundary", "JOÃO SEBASTIÃO CONCEIÇÃO", 10, "JOÃO SE..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, truncate(tt.input, tt.max))
		})
	}
}
