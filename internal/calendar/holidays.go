package calendar

import "time"

// Holidays returns the public holidays observed by the NRW transit operator for year,
// keyed by YYYY-MM-DD. Holidays annotate grid cells; they never change projection.
func Holidays(year int) map[string]string {
	out := make(map[string]string, 11)

	fixed := []struct {
		month time.Month
		day   int
		name  string
	}{
		{time.January, 1, "New Year's Day"},
		{time.May, 1, "Labour Day"},
		{time.October, 3, "German Unity Day"},
		{time.November, 1, "All Saints' Day"},
		{time.December, 25, "Christmas Day"},
		{time.December, 26, "Boxing Day"},
	}
	for _, h := range fixed {
		out[FormatDate(time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC))] = h.name
	}

	easter := EasterSunday(year)
	movable := []struct {
		offset int
		name   string
	}{
		{-2, "Good Friday"},
		{1, "Easter Monday"},
		{39, "Ascension Day"},
		{50, "Whit Monday"},
		{60, "Corpus Christi"},
	}
	for _, h := range movable {
		out[FormatDate(easter.AddDate(0, 0, h.offset))] = h.name
	}
	return out
}

// EasterSunday computes Gregorian Easter with the Meeus/Jones/Butcher algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
