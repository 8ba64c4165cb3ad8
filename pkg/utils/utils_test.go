package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "single digit month is zero padded",
			input:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			expected: "2024-01",
		},
		{
			name:     "december",
			input:    time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC),
			expected: "2023-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPeriod(tt.input))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	parsed, err := ParsePeriod("2024-03")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), parsed)

	for _, bad := range []string{"2024-13", "2024-0", "202403", "March 2024", "2024-00", ""} {
		_, err := ParsePeriod(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("2024-01"))
	assert.True(t, ValidPeriod("1999-12"))
	assert.False(t, ValidPeriod("2024-1"))
	assert.False(t, ValidPeriod("24-01"))
}

func TestDueDateInMonth(t *testing.T) {
	anchor := time.Date(2024, 2, 20, 14, 30, 0, 0, time.UTC)

	due := DueDateInMonth(anchor, 28)

	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), due)
}
