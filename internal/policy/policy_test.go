package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(weekday time.Weekday, hour, min int) time.Time {
	// 2025-03-03 is a Monday; offset into the wanted weekday.
	base := time.Date(2025, 3, 3, hour, min, 0, 0, time.UTC)
	return base.AddDate(0, 0, int(weekday-time.Monday))
}

func TestWithinBookingWindow(t *testing.T) {
	c := Default(time.UTC)

	assert.True(t, c.WithinBookingWindow(at(time.Monday, 9, 0)))
	assert.True(t, c.WithinBookingWindow(at(time.Wednesday, 14, 30)))
	assert.True(t, c.WithinBookingWindow(at(time.Friday, 21, 59)))

	assert.False(t, c.WithinBookingWindow(at(time.Monday, 8, 59)))
	assert.False(t, c.WithinBookingWindow(at(time.Monday, 22, 0)))
	assert.False(t, c.WithinBookingWindow(at(time.Saturday, 14, 0)))
	assert.False(t, c.WithinBookingWindow(at(time.Sunday, 14, 0)))
}

func TestWithinBookingWindowWeekendsAllowed(t *testing.T) {
	c := Default(time.UTC)
	c.WeekdaysOnly = false

	assert.True(t, c.WithinBookingWindow(at(time.Saturday, 14, 0)))
	assert.False(t, c.WithinBookingWindow(at(time.Saturday, 23, 0)))
}

func TestValidDuration(t *testing.T) {
	c := Default(time.UTC)

	assert.True(t, c.ValidDuration("15:00", "15:30"))  // exact floor
	assert.True(t, c.ValidDuration("15:00", "19:00"))  // exact cap
	assert.True(t, c.ValidDuration("09:00", "11:45"))

	assert.False(t, c.ValidDuration("15:00", "15:29")) // one under floor
	assert.False(t, c.ValidDuration("15:00", "19:01")) // one over cap
	assert.False(t, c.ValidDuration("15:00", "15:00")) // zero length
	assert.False(t, c.ValidDuration("17:00", "15:00")) // reversed
	assert.False(t, c.ValidDuration("bogus", "15:00"))
	assert.False(t, c.ValidDuration("15:00", "25:00"))
}

func TestStartAcceptable(t *testing.T) {
	c := Default(time.UTC)
	now := at(time.Tuesday, 14, 0)

	assert.True(t, c.StartAcceptable(now, "14:00"))
	assert.True(t, c.StartAcceptable(now, "13:30")) // exactly at the lag bound
	assert.True(t, c.StartAcceptable(now, "16:00"))

	assert.False(t, c.StartAcceptable(now, "13:29"))
	assert.False(t, c.StartAcceptable(now, "bogus"))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseClock("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	m, err = ParseClock(" 09:30 ")
	assert.NoError(t, err)
	assert.Equal(t, 9*60+30, m)

	for _, bad := range []string{"", "1500", "24:00", "12:60", "-1:00", "aa:bb"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "clock %q should be rejected", bad)
	}
}
