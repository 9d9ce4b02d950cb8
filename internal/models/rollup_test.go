package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-09-01", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBounds_Location(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	start, _, err := DayBounds("2026-09-01", jst)
	require.NoError(t, err)

	// Midnight JST, not midnight UTC.
	assert.Equal(t, int64(9*3600), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Unix()-start.Unix())
}

func TestDayBounds_Invalid(t *testing.T) {
	for _, date := range []string{"", "2026-9-1", "01-09-2026", "yesterday"} {
		_, _, err := DayBounds(date, time.UTC)
		assert.Error(t, err, date)
	}
}
