package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDateTime(t *testing.T) {
	loc := Location(DefaultTimezone)

	local, err := ParseDateTime(DefaultTimezone, "2030-06-03T10:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 3, 10, 30, 0, 0, loc), local)

	utc, err := ParseDateTime(DefaultTimezone, "2030-06-03T13:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, utc.Hour())
	assert.True(t, local.Equal(utc))

	_, err = ParseDateTime(DefaultTimezone, "03/06/2030 10:30")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("", "2030-06-03")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, StartOfDay(d), d)
}
