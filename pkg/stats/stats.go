// Package stats turns daily leaderboard snapshots into weekly and monthly
// reports. Everything here is a pure function of its input.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

// Rank thresholds, zero-based.
const (
	FirstPlace  = 0
	PodiumLast  = 2
	Top10Last   = 9
	UnknownName = "Unknown"
)

// ScoreRecord is one player's entry on one day's leaderboard.
type ScoreRecord struct {
	Date        string
	PlayerID    string
	Position    int
	Score       int64
	DisplayName string
}

// PlayerAggregate accumulates a single player's results across a window.
type PlayerAggregate struct {
	PlayerID        string
	FirstPlaceCount int
	PodiumCount     int
	Top10Count      int
	DaysPlayed      int
	Scores          []int64

	dates map[string]struct{}
}

// Average returns the mean score, or 0 when no scores were recorded.
func (a *PlayerAggregate) Average() float64 {
	return Mean(a.Scores)
}

// DailyWinner is the first-place row of a single day.
type DailyWinner struct {
	PlayerID    string `json:"playfab_id"`
	DisplayName string `json:"display_name"`
	Score       int64  `json:"score"`
}

// DayCount is the number of distinct players on a tracked date.
type DayCount struct {
	Date         string `json:"date"`
	Participants int    `json:"participants"`
}

// Names maps player ids to display names.
type Names map[string]string

// Lookup returns the display name for id, or "Unknown".
func (n Names) Lookup(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return UnknownName
}

// Tally is the single accumulate pass over a window's records.
type Tally struct {
	players map[string]*PlayerAggregate
	order   []string
	days    map[string]map[string]struct{}
	winners map[string]DailyWinner
}

func NewTally() *Tally {
	return &Tally{
		players: make(map[string]*PlayerAggregate),
		days:    make(map[string]map[string]struct{}),
		winners: make(map[string]DailyWinner),
	}
}

// Aggregate tallies records in input order.
func Aggregate(records []ScoreRecord) *Tally {
	t := NewTally()
	for _, r := range records {
		t.Add(r)
	}
	return t
}

// Add folds one record into the tally. When a date has more than one
// position-0 row, the last one added is kept as that day's winner.
func (t *Tally) Add(r ScoreRecord) {
	agg, ok := t.players[r.PlayerID]
	if !ok {
		agg = &PlayerAggregate{PlayerID: r.PlayerID, dates: make(map[string]struct{})}
		t.players[r.PlayerID] = agg
		t.order = append(t.order, r.PlayerID)
	}

	if _, seen := agg.dates[r.Date]; !seen {
		agg.dates[r.Date] = struct{}{}
		agg.DaysPlayed++
	}
	agg.Scores = append(agg.Scores, r.Score)

	if r.Position == FirstPlace {
		agg.FirstPlaceCount++
		t.winners[r.Date] = DailyWinner{PlayerID: r.PlayerID, DisplayName: r.DisplayName, Score: r.Score}
	}
	if r.Position <= PodiumLast {
		agg.PodiumCount++
	}
	if r.Position <= Top10Last {
		agg.Top10Count++
	}

	participants, ok := t.days[r.Date]
	if !ok {
		participants = make(map[string]struct{})
		t.days[r.Date] = participants
	}
	participants[r.PlayerID] = struct{}{}
}

// Players returns aggregates in the order players were first seen.
func (t *Tally) Players() []*PlayerAggregate {
	out := make([]*PlayerAggregate, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.players[id])
	}
	return out
}

func (t *Tally) Player(id string) (*PlayerAggregate, bool) {
	agg, ok := t.players[id]
	return agg, ok
}

func (t *Tally) UniquePlayers() int { return len(t.players) }

func (t *Tally) DaysTracked() int { return len(t.days) }

// AvgDailyParticipants is the mean number of distinct players per tracked
// date, 0 when nothing was tracked.
func (t *Tally) AvgDailyParticipants() float64 {
	if len(t.days) == 0 {
		return 0
	}
	total := lo.SumBy(lo.Values(t.days), func(p map[string]struct{}) int { return len(p) })
	return float64(total) / float64(len(t.days))
}

// DailyParticipation returns per-date participant counts sorted by date.
func (t *Tally) DailyParticipation() []DayCount {
	dates := lo.Keys(t.days)
	sort.Strings(dates)
	out := make([]DayCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayCount{Date: d, Participants: len(t.days[d])})
	}
	return out
}

// DailyWinners returns a copy of the per-date winners.
func (t *Tally) DailyWinners() map[string]DailyWinner {
	out := make(map[string]DailyWinner, len(t.winners))
	for d, w := range t.winners {
		out[d] = w
	}
	return out
}

// AllScores returns every score in the window, grouped by player in
// first-seen order.
func (t *Tally) AllScores() []int64 {
	var all []int64
	for _, id := range t.order {
		all = append(all, t.players[id].Scores...)
	}
	return all
}

// Mean returns the arithmetic mean of scores, 0 for an empty slice.
func Mean(scores []int64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return float64(lo.Sum(scores)) / float64(len(scores))
}

// Percentage returns count/days*100, or 0 when days is 0.
func Percentage(count, days int) float64 {
	if days == 0 {
		return 0
	}
	return float64(count) / float64(days) * 100
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// counter selects one of the per-player counts.
type counter func(*PlayerAggregate) int

func firstPlaces(a *PlayerAggregate) int { return a.FirstPlaceCount }
func podiums(a *PlayerAggregate) int     { return a.PodiumCount }
func top10s(a *PlayerAggregate) int      { return a.Top10Count }

// rankBy keeps players with a non-zero count, sorts them by less and
// truncates to n.
func rankBy(players []*PlayerAggregate, count counter, less func(a, b *PlayerAggregate) bool, n int) []*PlayerAggregate {
	ranked := lo.Filter(players, func(a *PlayerAggregate, _ int) bool { return count(a) > 0 })
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// byCount orders by count descending, then player id.
func byCount(count counter) func(a, b *PlayerAggregate) bool {
	return func(a, b *PlayerAggregate) bool {
		if count(a) != count(b) {
			return count(a) > count(b)
		}
		return a.PlayerID < b.PlayerID
	}
}

// byWins orders champions: first places, then mean score, then player id.
func byWins(a, b *PlayerAggregate) bool {
	if a.FirstPlaceCount != b.FirstPlaceCount {
		return a.FirstPlaceCount > b.FirstPlaceCount
	}
	if avgA, avgB := a.Average(), b.Average(); avgA != avgB {
		return avgA > avgB
	}
	return a.PlayerID < b.PlayerID
}

// FormatCount renders a count compactly, e.g. 1.5K or 2.3M.
func FormatCount(count int64) string {
	abs := count
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1000000:
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	case abs >= 1000:
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}
