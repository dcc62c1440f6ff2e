package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Explicit layouts tried before the bare month/day fallback. ISO first,
// then the locale-preferred ordering.
var (
	layoutsMonthFirst = []string{
		"2006-01-02",
		"1/2/2006",
		"01/02/2006",
		"1/2/06",
		"01/02/06",
		"01-02-06",
		"1-2-06",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
	}
	layoutsDayFirst = []string{
		"2006-01-02",
		"2/1/2006",
		"02/01/2006",
		"2/1/06",
		"02/01/06",
		"02-01-06",
		"2 Jan 2006",
		"2 January 2006",
	}
)

var (
	// YY-MM-DD left behind when a 4-digit ISO year was truncated upstream
	// (e.g. "24-01-17" from "2024-01-17").
	truncatedISOPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{2})$`)
	bareDatePattern     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)
)

// Date parses a date string. monthFirst selects the column convention for
// ambiguous numeric forms. A missing year resolves via inferredYear when it
// is plausible, otherwise against now, stepping back a year when the month
// sits more than one month in the future, so December statements issued
// before year-end land in the right year.
func Date(s string, monthFirst bool, inferredYear int, now time.Time) (time.Time, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", ErrUnparsable)
	}

	// Checked ahead of the layout loop: the day-first DD-MM-YY layout would
	// otherwise claim these.
	if m := truncatedISOPattern.FindStringSubmatch(t); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		third, _ := strconv.Atoi(m[3])
		if first >= 20 && first <= 99 && second >= 1 && second <= 12 && third >= 1 && third <= 31 {
			return makeDate(2000+first, second, third)
		}
	}

	layouts := layoutsDayFirst
	if monthFirst {
		layouts = layoutsMonthFirst
	}
	for _, layout := range layouts {
		if d, err := time.Parse(layout, t); err == nil {
			if yearPlausible(d.Year()) {
				return d, nil
			}
		}
	}

	m := bareDatePattern.FindStringSubmatch(t)
	if m == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, ErrUnparsable)
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])

	month, day := second, first
	if monthFirst {
		month, day = first, second
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("implausible date %q: %w", s, ErrUnparsable)
	}

	year := 0
	switch {
	case m[3] != "":
		y, _ := strconv.Atoi(m[3])
		switch {
		case y <= 99:
			year = 2000 + y
		case yearPlausible(y):
			year = y
		case yearPlausible(inferredYear):
			year = inferredYear
		default:
			year = now.Year()
		}
	case yearPlausible(inferredYear):
		year = inferredYear
	default:
		year = now.Year()
		if month > int(now.Month())+1 {
			year--
		}
	}

	return makeDate(year, month, day)
}

func yearPlausible(y int) bool {
	return y >= 2000 && y <= 2100
}

// makeDate builds a UTC date and rejects overflow (time.Date normalizes
// Feb 30 into March; a normalized day means the input was invalid).
func makeDate(year, month, day int) (time.Time, error) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d: %w", year, month, day, ErrUnparsable)
	}
	return d, nil
}
