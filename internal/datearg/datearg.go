// Package datearg parses --start-date/--end-date values.
package datearg

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

var parser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Parse returns s as a YYYY-MM-DD date. ISO dates pass through; anything
// else goes through natural-language parsing relative to now ("yesterday",
// "last monday", "3 days ago"). An empty s yields "".
func Parse(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(stats.DateLayout, s); err == nil {
		return t.Format(stats.DateLayout), nil
	}

	r, err := parser.Parse(strings.ToLower(s), now)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	if r == nil {
		return "", fmt.Errorf("unrecognised date %q (want YYYY-MM-DD)", s)
	}
	return r.Time.Format(stats.DateLayout), nil
}

// Range parses both bounds and rejects an inverted range.
func Range(start, end string, now time.Time) (string, string, error) {
	from, err := Parse(start, now)
	if err != nil {
		return "", "", err
	}
	to, err := Parse(end, now)
	if err != nil {
		return "", "", err
	}
	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("start date %s is after end date %s", from, to)
	}
	return from, to, nil
}
