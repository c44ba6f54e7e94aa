package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateAny(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15/08/2025", "2025-08-15"},
		{"2025-08-15", "2025-08-15"},
		{"3 de março de 2025", "2025-03-03"},
		{"iniciou em 3 de março de 2025", "2025-03-03"},
		{"Ad started Mar 3, 2025", "2025-03-03"},
		{"5 jan 2025", "2025-01-05"},
		{"12 de dezembro de 2024", "2024-12-12"},
		{"", ""},
		{"sem data nenhuma", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseDateAny(c.in), "input %q", c.in)
	}
}

func TestParseDateAnyDayFirst(t *testing.T) {
	// Ambiguous numeric dates resolve day-first for the fixed locale.
	assert.Equal(t, "2025-04-03", ParseDateAny("03/04/2025"))
}

func TestDaysBetween(t *testing.T) {
	ref := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 9, DaysBetween("2025-01-01", ref))
	assert.Equal(t, 0, DaysBetween("2025-01-10", ref))

	// Future dates clamp to zero, never negative.
	assert.Equal(t, 0, DaysBetween("2099-01-01", ref))

	assert.Equal(t, 0, DaysBetween("", ref))
	assert.Equal(t, 0, DaysBetween("not-a-date", ref))
	assert.Equal(t, 0, DaysBetween("2025-99-99", ref))
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2025, 1, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 9, DaysBetween("2025-01-01", ref))
}
