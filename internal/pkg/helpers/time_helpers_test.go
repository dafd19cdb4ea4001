package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2019, time.May, 13, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2019-05-13", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2019-05-13")
	require.NotNil(t, d)
	assert.Equal(t, 2019, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 13, d.Day())

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("13/05/2019"))
	assert.Nil(t, ParseDate("not-a-date"))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, 2)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls over to January of the next year.
	start, end = MonthBounds(2025, 12)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
