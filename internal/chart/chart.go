// Package chart renders report charts as PNG images.
package chart

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

var (
	barColor  = drawing.ColorFromHex("C73B3C")
	textColor = drawing.ColorFromHex("303030")
)

// Participation draws one bar per tracked date with that day's player count.
// A window with no data still renders, with a single empty bar and a notice
// in the title.
func Participation(title string, days []stats.DayCount) ([]byte, error) {
	if len(days) == 0 {
		title = "No leaderboard data for " + title
		days = []stats.DayCount{{Date: "no data"}}
	}

	bars := make([]chart.Value, 0, len(days))
	peak := 0
	for _, d := range days {
		bars = append(bars, chart.Value{
			Label: dayLabel(d.Date),
			Value: float64(d.Participants),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		if d.Participants > peak {
			peak = d.Participants
		}
	}

	width := 120 + 40*len(bars)
	if width < 480 {
		width = 480
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   400,
		BarWidth: 24,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		TitleStyle: chart.Style{FontColor: textColor},
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Name:  "Players",
			Style: chart.Style{FontColor: textColor},
			// Pinned to zero so a flat or empty window still has a range.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak) + 1},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// dayLabel trims the year off YYYY-MM-DD.
func dayLabel(date string) string {
	if len(date) == len(stats.DateLayout) {
		return date[len("2006-"):]
	}
	return date
}
