package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(date, player string, pos int, score int64) ScoreRecord {
	return ScoreRecord{Date: date, PlayerID: player, Position: pos, Score: score, DisplayName: "name-" + player}
}

// twoDays is three players over two days, A and B each winning once.
func twoDays() []ScoreRecord {
	return []ScoreRecord{
		rec("2024-01-01", "A", 0, 100),
		rec("2024-01-01", "B", 1, 90),
		rec("2024-01-01", "C", 2, 80),
		rec("2024-01-02", "B", 0, 95),
		rec("2024-01-02", "A", 1, 85),
		rec("2024-01-02", "C", 2, 70),
	}
}

var twoDayWindow = Window{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
}

// fakeLeaderboard builds a deterministic, well-formed leaderboard: every day
// has positions 0..n-1 with non-increasing scores.
func fakeLeaderboard(seed uint64, start time.Time, days int) []ScoreRecord {
	f := gofakeit.New(seed)
	pool := make([]string, 15)
	for i := range pool {
		pool[i] = fmt.Sprintf("P%02d-%s", i, f.LetterN(4))
	}

	var out []ScoreRecord
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format(DateLayout)
		if f.Number(0, 9) == 0 {
			continue // quiet day
		}
		players := append([]string(nil), pool...)
		f.ShuffleStrings(players)
		players = players[:f.Number(1, len(players))]
		score := int64(f.Number(5000, 9000))
		for pos, id := range players {
			out = append(out, ScoreRecord{Date: date, PlayerID: id, Position: pos, Score: score, DisplayName: id})
			score -= int64(f.Number(0, 300))
		}
	}
	return out
}

func TestTally(t *testing.T) {
	tally := Aggregate(twoDays())

	assert.Equal(t, 3, tally.UniquePlayers())
	assert.Equal(t, 2, tally.DaysTracked())
	assert.Equal(t, 3.0, tally.AvgDailyParticipants())

	a, ok := tally.Player("A")
	require.True(t, ok)
	assert.Equal(t, 1, a.FirstPlaceCount)
	assert.Equal(t, 2, a.PodiumCount)
	assert.Equal(t, 2, a.Top10Count)
	assert.Equal(t, 2, a.DaysPlayed)
	assert.Equal(t, []int64{100, 85}, a.Scores)
	assert.Equal(t, 92.5, a.Average())

	winners := tally.DailyWinners()
	assert.Equal(t, DailyWinner{PlayerID: "A", DisplayName: "name-A", Score: 100}, winners["2024-01-01"])
	assert.Equal(t, DailyWinner{PlayerID: "B", DisplayName: "name-B", Score: 95}, winners["2024-01-02"])

	assert.Equal(t, []DayCount{{"2024-01-01", 3}, {"2024-01-02", 3}}, tally.DailyParticipation())
}

func TestTallyDuplicateWinnerKeepsLast(t *testing.T) {
	tally := Aggregate([]ScoreRecord{
		rec("2024-01-01", "A", 0, 100),
		rec("2024-01-01", "B", 0, 99),
	})
	assert.Equal(t, "B", tally.DailyWinners()["2024-01-01"].PlayerID)
}

func TestTallyDaysPlayedCountsDistinctDates(t *testing.T) {
	tally := Aggregate([]ScoreRecord{
		rec("2024-01-01", "A", 0, 100),
		rec("2024-01-01", "A", 4, 50),
		rec("2024-01-02", "A", 3, 60),
	})
	a, _ := tally.Player("A")
	assert.Equal(t, 2, a.DaysPlayed)
	assert.Len(t, a.Scores, 3)
}

func TestMeanPercentageRound(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []int64{1000}, 1000},
		{"multiple", []int64{1000, 2000, 3000}, 2000},
		{"fractional", []int64{1, 2}, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mean(tt.scores))
		})
	}

	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 92.33, Round2(92.3333))
	assert.Equal(t, 92.5, Round2(92.5))
}

func TestNamesLookup(t *testing.T) {
	names := Names{"A": "Alice"}
	assert.Equal(t, "Alice", names.Lookup("A"))
	assert.Equal(t, UnknownName, names.Lookup("Z"))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1000000, "1.0M"},
		{-2500, "-2.5K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCount(tt.input), "FormatCount(%d)", tt.input)
	}
}

func TestReportsEmptyInput(t *testing.T) {
	weekly := BuildWeekly(twoDayWindow, nil, Names{})
	assert.Nil(t, weekly.WeeklyChampion)
	assert.Empty(t, weekly.TopFirstPlaces)
	assert.Empty(t, weekly.TopPodiumFinishes)
	assert.Empty(t, weekly.MostConsistent)
	assert.Empty(t, weekly.DailyWinners)
	assert.Equal(t, 0, weekly.TotalUniquePlayers)
	assert.Equal(t, 0.0, weekly.Participation.AvgDailyParticipants)

	monthly := BuildMonthly(twoDayWindow, nil, Names{})
	assert.Nil(t, monthly.MonthlyChampion)
	assert.Empty(t, monthly.TopChampions)
	assert.Empty(t, monthly.TopPodiumFinishes)
	assert.Empty(t, monthly.Top10Finishes)
	assert.Empty(t, monthly.MostConsistent)
	assert.Nil(t, monthly.ScoreStatistics)
	assert.Equal(t, 0, monthly.Participation.TotalDaysTracked)
	assert.Equal(t, 0.0, monthly.Participation.AvgDailyParticipants)
	assert.Equal(t, "2024-01-01", monthly.MonthPeriod.StartDate)
	assert.Equal(t, "2024-01-02", monthly.MonthPeriod.EndDate)
}

func TestMonthlyTwoDayScenario(t *testing.T) {
	names := Names{"A": "Alice", "B": "Bob", "C": "Carol"}
	r := BuildMonthly(twoDayWindow, twoDays(), names)

	require.NotNil(t, r.MonthlyChampion)
	assert.Equal(t, 1, r.MonthlyChampion.FirstPlaceCount)
	assert.Contains(t, []string{"A", "B"}, r.MonthlyChampion.PlayerID)
	assert.Equal(t, 50.0, r.MonthlyChampion.WinPercentage)

	// Equal wins and equal means fall back to player id.
	require.Len(t, r.TopChampions, 2)
	assert.Equal(t, "A", r.TopChampions[0].PlayerID)
	assert.Equal(t, "B", r.TopChampions[1].PlayerID)

	assert.Equal(t, ParticipationStats{TotalUniquePlayers: 3, TotalDaysTracked: 2, AvgDailyParticipants: 3.0}, r.Participation)

	require.Len(t, r.TopPodiumFinishes, 3)
	for _, p := range r.TopPodiumFinishes {
		assert.Equal(t, 2, p.PodiumCount)
		assert.Equal(t, 100.0, p.PodiumPercentage)
	}
	assert.Equal(t, []string{"A", "B", "C"}, []string{
		r.TopPodiumFinishes[0].PlayerID, r.TopPodiumFinishes[1].PlayerID, r.TopPodiumFinishes[2].PlayerID,
	})

	// Nobody has five days.
	assert.Empty(t, r.MostConsistent)

	require.NotNil(t, r.ScoreStatistics)
	assert.Equal(t, ScoreStatistics{TotalScoresRecorded: 6, AverageScore: 86, HighestScore: 100, LowestScore: 70}, *r.ScoreStatistics)
}

func TestChampionTieBrokenByAverage(t *testing.T) {
	records := []ScoreRecord{
		rec("2024-01-01", "Z", 0, 500),
		rec("2024-01-01", "A", 1, 100),
		rec("2024-01-02", "A", 0, 120),
		rec("2024-01-02", "Z", 1, 400),
	}
	r := BuildWeekly(twoDayWindow, records, Names{})
	require.NotNil(t, r.WeeklyChampion)
	assert.Equal(t, "Z", r.WeeklyChampion.PlayerID)
	assert.Equal(t, UnknownName, r.WeeklyChampion.DisplayName)
}

func TestMonthlyConsistencyThreshold(t *testing.T) {
	var records []ScoreRecord
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 6; d++ {
		date := start.AddDate(0, 0, d).Format(DateLayout)
		if d < 2 {
			records = append(records, rec(date, "STAR", 0, 10000))
			records = append(records, rec(date, "REG", 1, 100))
		} else {
			records = append(records, rec(date, "REG", 0, 100))
		}
		if d < 5 {
			records = append(records, rec(date, "FIVE", 5, 200))
		}
	}
	w, _ := Month(2024, 5)
	r := BuildMonthly(w, records, Names{})

	ids := make([]string, 0, len(r.MostConsistent))
	for _, c := range r.MostConsistent {
		ids = append(ids, c.PlayerID)
	}
	// FIVE: 5*200 = 1000 beats REG: 6*100 = 600; STAR has only two days.
	assert.Equal(t, []string{"FIVE", "REG"}, ids)
	assert.Equal(t, 1000.0, r.MostConsistent[0].ConsistencyRating)
	assert.Equal(t, int64(200), r.MostConsistent[0].AverageScore)
	assert.Equal(t, int64(200), r.MostConsistent[0].MaxScore)
	assert.Equal(t, int64(200), r.MostConsistent[0].MinScore)

	lowered := BuildMonthly(w, records, Names{}, WithConsistencyDays(2))
	assert.Equal(t, "STAR", lowered.MostConsistent[0].PlayerID)
}

func TestWeeklyConsistencyOrdering(t *testing.T) {
	var records []ScoreRecord
	w, _ := Week(2024, 10)
	for d := 0; d < 4; d++ {
		date := w.Start.AddDate(0, 0, d).Format(DateLayout)
		records = append(records, rec(date, "LOW", 0, 50))
		if d < 3 {
			records = append(records, rec(date, "HIGH", 1, 900))
		}
		if d < 2 {
			records = append(records, rec(date, "SHORT", 2, 9999))
		}
	}
	r := BuildWeekly(w, records, Names{})

	require.Len(t, r.MostConsistent, 2)
	// Days played dominates the mean.
	assert.Equal(t, "LOW", r.MostConsistent[0].PlayerID)
	assert.Equal(t, 4, r.MostConsistent[0].DaysPlayed)
	assert.Equal(t, "HIGH", r.MostConsistent[1].PlayerID)
	assert.Equal(t, int64(900), r.MostConsistent[1].AverageScore)

	require.NotNil(t, r.WeeklyChampion)
	assert.Equal(t, "LOW", r.WeeklyChampion.PlayerID)
	assert.Equal(t, 4, r.WeeklyChampion.FirstPlaceCount)
	assert.Equal(t, 100.0, r.WeeklyChampion.WinPercentage)
	assert.Len(t, r.DailyWinners, 4)
}

func TestTopListsTruncate(t *testing.T) {
	var records []ScoreRecord
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 25; d++ {
		date := start.AddDate(0, 0, d).Format(DateLayout)
		for p := 0; p < 30; p++ {
			// Rotate so every player eventually places everywhere.
			id := fmt.Sprintf("P%02d", (p+d)%30)
			records = append(records, rec(date, id, p, int64(1000-p)))
		}
	}
	w, _ := Month(2024, 7)
	m := BuildMonthly(w, records, Names{})
	assert.Len(t, m.TopChampions, 10)
	assert.Len(t, m.TopPodiumFinishes, 10)
	assert.Len(t, m.Top10Finishes, 20)
	assert.Len(t, m.MostConsistent, 15)

	wk := BuildWeekly(w, records, Names{})
	assert.Len(t, wk.TopFirstPlaces, 10)
	assert.Len(t, wk.TopPodiumFinishes, 10)
	assert.Len(t, wk.MostConsistent, 10)
}

func TestReportProperties(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	w, _ := Month(2024, 3)

	for seed := uint64(1); seed <= 20; seed++ {
		records := fakeLeaderboard(seed, start, 31)

		distinct := map[string]struct{}{}
		for _, r := range records {
			distinct[r.PlayerID] = struct{}{}
		}

		m := BuildMonthly(w, records, Names{})
		if len(records) > 0 {
			assert.Equal(t, len(distinct), m.Participation.TotalUniquePlayers, "seed %d", seed)
		}

		wins := 0
		for _, a := range Aggregate(records).Players() {
			wins += a.FirstPlaceCount
		}
		assert.Equal(t, m.Participation.TotalDaysTracked, wins, "seed %d", seed)

		again := BuildMonthly(w, records, Names{})
		if diff := cmp.Diff(m, again); diff != "" {
			t.Errorf("seed %d: monthly report not idempotent (-first +second):\n%s", seed, diff)
		}
		if diff := cmp.Diff(BuildWeekly(w, records, Names{}), BuildWeekly(w, records, Names{})); diff != "" {
			t.Errorf("seed %d: weekly report not idempotent (-first +second):\n%s", seed, diff)
		}
	}
}
