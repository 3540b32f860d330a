package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used by the store and all reports.
const DateLayout = "2006-01-02"

// ErrInvalidPeriod is returned for a month outside 1-12, a week outside 1-53,
// or a period string that cannot be parsed.
var ErrInvalidPeriod = errors.New("invalid period")

// Window is an inclusive range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Period is the JSON shape of a window inside a report.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (w Window) StartDate() string { return w.Start.Format(DateLayout) }
func (w Window) EndDate() string   { return w.End.Format(DateLayout) }

func (w Window) Period() Period {
	return Period{StartDate: w.StartDate(), EndDate: w.EndDate()}
}

// Contains reports whether the calendar date d (DateLayout) falls in the window.
func (w Window) Contains(d string) bool {
	return d >= w.StartDate() && d <= w.EndDate()
}

func (w Window) String() string {
	return w.StartDate() + " to " + w.EndDate()
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Month returns the first through last calendar day of the given month.
func Month(year, month int) (Window, error) {
	if month < 1 || month > 12 {
		return Window{}, fmt.Errorf("%w: month %d is outside 1-12", ErrInvalidPeriod, month)
	}
	start := civil(year, time.Month(month), 1)
	// Day 0 of the following month normalises to the last day of this one.
	end := civil(year, time.Month(month)+1, 0)
	return Window{Start: start, End: end}, nil
}

// Week returns Monday through Sunday of ISO-8601 week (year, week). Week 53
// in a year that only has 52 resolves to the Monday following week 52.
func Week(year, week int) (Window, error) {
	if week < 1 || week > 53 {
		return Window{}, fmt.Errorf("%w: week %d is outside 1-53", ErrInvalidPeriod, week)
	}
	// ISO week 1 is the week containing January 4th.
	jan4 := civil(year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	start := jan4.AddDate(0, 0, -offset+(week-1)*7)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}, nil
}

// Day returns the single-day window containing t.
func Day(t time.Time) Window {
	d := civil(t.Year(), t.Month(), t.Day())
	return Window{Start: d, End: d}
}

// CurrentMonth returns the calendar month containing now.
func CurrentMonth(now time.Time) Window {
	w, _ := Month(now.Year(), int(now.Month()))
	return w
}

// CurrentWeek returns the ISO week containing now.
func CurrentWeek(now time.Time) Window {
	year, week := now.ISOWeek()
	w, _ := Week(year, week)
	return w
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Window, error) {
	year, month, err := splitPeriod(s, "-")
	if err != nil {
		return Window{}, err
	}
	return Month(year, month)
}

// ParseWeek parses "YYYY-WW" or "YYYY-Www".
func ParseWeek(s string) (Window, error) {
	sep := "-"
	if strings.Contains(strings.ToUpper(s), "-W") {
		sep = "-W"
		s = strings.Replace(s, "-w", "-W", 1)
	}
	year, week, err := splitPeriod(s, sep)
	if err != nil {
		return Window{}, err
	}
	return Week(year, week)
}

// ISOWeekLabel formats the window's ISO week as "YYYY-Www".
func ISOWeekLabel(w Window) string {
	year, week := w.Start.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func splitPeriod(s, sep string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("%w: bad year in %q", ErrInvalidPeriod, s)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad number in %q", ErrInvalidPeriod, s)
	}
	return year, n, nil
}
