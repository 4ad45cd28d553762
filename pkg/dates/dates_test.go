package dates

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEpoch(t *testing.T) {
	epoch, err := UTC.ToEpoch("2021-03-13")
	require.NoError(t, err)
	assert.Equal(t, int64(1615593600), epoch)

	_, err = UTC.ToEpoch("13/03/2021")
	require.Error(t, err)

	_, err = UTC.ToEpoch("2021-02-30")
	require.Error(t, err)
}

func TestToEpoch_RoundTrip(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	dates := []string{"2000-01-01", "2016-02-29", "2021-03-13", "2021-03-14", "2021-11-07", "1999-12-31"}
	for _, cal := range []Calendar{UTC, {Loc: ny}} {
		for _, d := range dates {
			epoch, err := cal.ToEpoch(d)
			require.NoError(t, err)
			assert.Equal(t, d, cal.FormatEpoch(epoch))
		}
	}
}

func TestTodayEpoch(t *testing.T) {
	cal := Calendar{
		Loc: time.UTC,
		Now: func() time.Time { return time.Date(2021, 3, 12, 15, 30, 0, 0, time.UTC) },
	}
	assert.Equal(t, int64(1615507200), cal.TodayEpoch())
}

func TestLastWeekdayEpoch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-03-08", "2021-03-04"}, // Monday
		{"2021-03-09", "2021-03-05"}, // Tuesday
		{"2021-03-10", "2021-03-08"}, // Wednesday
		{"2021-03-11", "2021-03-09"}, // Thursday
		{"2021-03-12", "2021-03-10"}, // Friday
		{"2021-03-13", "2021-03-11"}, // Saturday
		{"2021-03-14", "2021-03-11"}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			epoch, err := UTC.ToEpoch(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, UTC.FormatEpoch(UTC.LastWeekdayEpoch(epoch)))
		})
	}
}

func TestLastWeekdayEpoch_NeverWeekend(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, cal := range []Calendar{UTC, {Loc: ny}} {
		start, err := cal.ToEpoch("2020-01-01")
		require.NoError(t, err)

		// every 7 hours for two years hits all weekdays at many times of day
		for epoch := start; epoch < start+2*365*SecondsPerDay; epoch += 7 * 3600 {
			prior := cal.LastWeekdayEpoch(epoch)
			assert.False(t, cal.IsWeekend(prior), "input %d gave weekend %s", epoch, cal.FormatEpoch(prior))
			assert.Less(t, prior, epoch)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	sat, _ := UTC.ToEpoch("2021-03-13")
	mon, _ := UTC.ToEpoch("2021-03-15")
	assert.True(t, UTC.IsWeekend(sat))
	assert.False(t, UTC.IsWeekend(mon))
}

func TestStartOfDay(t *testing.T) {
	// Wed 2021-03-10 18:00 UTC
	assert.Equal(t, int64(1615334400), UTC.StartOfDay(1615399200))
	assert.Equal(t, int64(1615334400), UTC.StartOfDay(1615334400))

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	cal := Calendar{Loc: ny}

	// 03:00 UTC on Thursday is still Wednesday evening in New York
	got := cal.StartOfDay(1615431600)
	assert.Equal(t, time.Date(2021, 3, 10, 0, 0, 0, 0, ny).Unix(), got)
	assert.Equal(t, int64(1615334400), cal.UTCDate(1615431600))
	assert.Equal(t, int64(1615420800), UTC.UTCDate(1615431600))
}
