package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	trailingYearRe = regexp.MustCompile(`^(.*?),?\s*(\d{4})$`)
	dashSpacingRe  = regexp.MustCompile(`\s*-\s*`)
	dayOnlyRe      = regexp.MustCompile(`^\d{1,2}$`)
)

var monthDayLayouts = []string{"Jan 2", "January 2", "Jan. 2"}

// ParseRange parses the date-range strings operators type for special service days:
//
//	2023-11-24..2023-12-02
//	2023-11-24 to 2023-12-02
//	Dec 31, 2023 to Jan 2, 2024
//	Nov 24-Dec 2, 2023
//	Dec 24-26, 2023
//	Dec 28, 2023-Jan 2, 2024
//	Dec 31, 2023
//	2023-12-31
//
// Ranges may cross month and year boundaries.
func ParseRange(s string) (Range, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty date range")
	}

	for _, sep := range []string{"..", " to ", "/"} {
		if left, right, ok := strings.Cut(s, sep); ok {
			return parseEnds(raw, left, right)
		}
	}

	if d, err := ParseDate(s); err == nil {
		return Range{Start: d, End: d}, nil
	}

	m := trailingYearRe.FindStringSubmatch(s)
	if m == nil {
		return Range{}, fmt.Errorf("range %q: missing year", raw)
	}
	endYear, _ := strconv.Atoi(m[2])
	body := dashSpacingRe.ReplaceAllString(strings.TrimSpace(m[1]), "-")

	left, right, isRange := strings.Cut(body, "-")
	startMonth, startDay, startYear, err := parseHumanDay(left)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", raw, err)
	}

	if !isRange {
		if startYear != 0 {
			return Range{}, fmt.Errorf("range %q: year given twice", raw)
		}
		d, err := buildDate(endYear, startMonth, startDay)
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, err)
		}
		return Range{Start: d, End: d}, nil
	}

	endMonth, endDay := startMonth, 0
	if dayOnlyRe.MatchString(strings.TrimSpace(right)) {
		endDay, _ = strconv.Atoi(strings.TrimSpace(right))
	} else {
		var y int
		endMonth, endDay, y, err = parseHumanDay(right)
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, err)
		}
		if y != 0 {
			return Range{}, fmt.Errorf("range %q: year given twice", raw)
		}
	}

	if startYear == 0 {
		startYear = endYear
		if startMonth > endMonth {
			startYear = endYear - 1
		}
	}

	start, err := buildDate(startYear, startMonth, startDay)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", raw, err)
	}
	end, err := buildDate(endYear, endMonth, endDay)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", raw, err)
	}
	return orderedRange(raw, start, end)
}

// SpecialOf parses a special-event range string, projecting as Never when it is malformed.
func SpecialOf(s string) Occurrence {
	r, err := ParseRange(s)
	if err != nil {
		return Never{}
	}
	return r
}

// parseEnds parses the two sides of an explicit separator. Each side is ISO or
// "Nov 24, 2023"; the start may leave out its year, which then comes from the end.
func parseEnds(raw, left, right string) (Range, error) {
	end, err := ParseDate(right)
	if err != nil {
		month, mday, year, herr := parseHumanDay(right)
		if herr != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, herr)
		}
		if year == 0 {
			return Range{}, fmt.Errorf("range %q: missing year", raw)
		}
		if end, err = buildDate(year, month, mday); err != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, err)
		}
	}

	start, err := ParseDate(left)
	if err != nil {
		month, mday, year, herr := parseHumanDay(left)
		if herr != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, herr)
		}
		if year == 0 {
			year = end.Year()
			if month > end.Month() {
				year--
			}
		}
		if start, err = buildDate(year, month, mday); err != nil {
			return Range{}, fmt.Errorf("range %q: %w", raw, err)
		}
	}
	return orderedRange(raw, start, end)
}

// parseHumanDay parses "Nov 24" or "Nov 24, 2023". year is 0 when absent.
func parseHumanDay(s string) (time.Month, int, int, error) {
	s = strings.TrimSpace(s)
	year := 0
	if m := trailingYearRe.FindStringSubmatch(s); m != nil && strings.Contains(s, ",") {
		year, _ = strconv.Atoi(m[2])
		s = strings.TrimSpace(m[1])
	}
	for _, layout := range monthDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Month(), t.Day(), year, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("unrecognized date %q", s)
}

func buildDate(year int, month time.Month, day int) (time.Time, error) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, fmt.Errorf("%s %d does not exist in %d", month, day, year)
	}
	return d, nil
}

func orderedRange(raw string, start, end time.Time) (Range, error) {
	if end.Before(start) {
		return Range{}, fmt.Errorf("range %q: end before start", raw)
	}
	return Range{Start: start, End: end}, nil
}
