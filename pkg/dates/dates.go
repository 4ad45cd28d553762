package dates

import (
	"fmt"
	"time"
)

// Layout is the calendar date format accepted by ToEpoch.
const Layout = "2006-01-02"

// SecondsPerDay is one calendar day in epoch seconds.
const SecondsPerDay = 60 * 60 * 24

// Calendar converts between calendar dates and epoch seconds in one location.
type Calendar struct {
	Loc *time.Location
	Now func() time.Time
}

// Local reads dates as naive local wall-clock time.
var Local = Calendar{Loc: time.Local}

// UTC reads dates as midnight UTC.
var UTC = Calendar{Loc: time.UTC}

func (c Calendar) location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

func (c Calendar) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// ToEpoch parses a YYYY-MM-DD date as midnight and returns its epoch seconds.
func (c Calendar) ToEpoch(date string) (int64, error) {
	t, err := time.ParseInLocation(Layout, date, c.location())
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Unix(), nil
}

// FormatEpoch renders epoch seconds as a YYYY-MM-DD date.
func (c Calendar) FormatEpoch(epoch int64) string {
	return c.Time(epoch).Format(Layout)
}

// Time returns epoch seconds as a time in the calendar's location.
func (c Calendar) Time(epoch int64) time.Time {
	return time.Unix(epoch, 0).In(c.location())
}

// TodayEpoch returns midnight of the current date.
func (c Calendar) TodayEpoch() int64 {
	return c.StartOfDay(c.now().Unix())
}

// StartOfDay returns midnight of the date epoch falls on.
func (c Calendar) StartOfDay(epoch int64) int64 {
	y, m, d := c.Time(epoch).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location()).Unix()
}

// UTCDate returns the date epoch falls on in this calendar, as midnight UTC.
// Price rows are keyed the same way.
func (c Calendar) UTCDate(epoch int64) int64 {
	y, m, d := c.Time(epoch).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// LastWeekdayEpoch returns the previous trading session before epoch, keeping
// the input's time of day. Monday steps back to Thursday and a weekend steps
// back to Thursday as well. Any result that would fall on a weekend is moved
// to the Friday before it.
func (c Calendar) LastWeekdayEpoch(epoch int64) int64 {
	t := c.Time(epoch)

	// Monday is 0 in this table
	weekday := (int(t.Weekday()) + 6) % 7
	offset := max(1, (weekday+6)%7-3)

	prior := t.AddDate(0, 0, -(offset + 1))
	switch prior.Weekday() {
	case time.Saturday:
		prior = prior.AddDate(0, 0, -1)
	case time.Sunday:
		prior = prior.AddDate(0, 0, -2)
	}
	return prior.Unix()
}

// IsWeekend reports whether epoch falls on a Saturday or Sunday.
func (c Calendar) IsWeekend(epoch int64) bool {
	switch c.Time(epoch).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// ToEpoch parses date in local time.
func ToEpoch(date string) (int64, error) {
	return Local.ToEpoch(date)
}

// TodayEpoch returns local midnight of today.
func TodayEpoch() int64 {
	return Local.TodayEpoch()
}

// LastWeekdayEpoch returns the prior session in local time.
func LastWeekdayEpoch(epoch int64) int64 {
	return Local.LastWeekdayEpoch(epoch)
}
