package stats

import (
	"sort"

	"github.com/samber/lo"
)

const (
	MonthlyConsistencyDays = 5
	monthlyChampionsN      = 10
	monthlyPodiumN         = 10
	monthlyTop10N          = 20
	monthlyConsistentN     = 15
)

type MonthlyChampion struct {
	PlayerID        string  `json:"playfab_id"`
	DisplayName     string  `json:"display_name"`
	FirstPlaceCount int     `json:"first_place_count"`
	WinPercentage   float64 `json:"win_percentage"`
}

type PodiumEntry struct {
	PlayerID         string  `json:"playfab_id"`
	DisplayName      string  `json:"display_name"`
	PodiumCount      int     `json:"podium_count"`
	PodiumPercentage float64 `json:"podium_percentage"`
}

type Top10Entry struct {
	PlayerID    string `json:"playfab_id"`
	DisplayName string `json:"display_name"`
	Top10Count  int    `json:"top_10_count"`
}

// MonthlyConsistent carries the truncated mean for display next to the
// unrounded rating used for ordering.
type MonthlyConsistent struct {
	PlayerID          string  `json:"playfab_id"`
	DisplayName       string  `json:"display_name"`
	DaysPlayed        int     `json:"days_played"`
	AverageScore      int64   `json:"average_score"`
	MaxScore          int64   `json:"max_score"`
	MinScore          int64   `json:"min_score"`
	ConsistencyRating float64 `json:"consistency_rating"`
}

type ScoreStatistics struct {
	TotalScoresRecorded int   `json:"total_scores_recorded"`
	AverageScore        int64 `json:"average_score"`
	HighestScore        int64 `json:"highest_score"`
	LowestScore         int64 `json:"lowest_score"`
}

// MonthlyReport is an immutable snapshot of one calendar month.
type MonthlyReport struct {
	MonthPeriod        Period              `json:"month_period"`
	MonthlyChampion    *MonthlyChampion    `json:"monthly_champion"`
	TopChampions       []MonthlyChampion   `json:"top_champions"`
	TopPodiumFinishes  []PodiumEntry       `json:"top_podium_finishes"`
	Top10Finishes      []Top10Entry        `json:"top_10_finishes"`
	MostConsistent     []MonthlyConsistent `json:"most_consistent"`
	Participation      ParticipationStats  `json:"participation_stats"`
	ScoreStatistics    *ScoreStatistics    `json:"score_statistics"`
	DailyParticipation []DayCount          `json:"daily_participation"`
}

// BuildMonthly aggregates records (sorted by date, position) for window w.
func BuildMonthly(w Window, records []ScoreRecord, names Names, opts ...Option) *MonthlyReport {
	o := newOptions(MonthlyConsistencyDays, opts)
	t := Aggregate(records)
	players := t.Players()
	days := t.DaysTracked()

	r := &MonthlyReport{
		MonthPeriod:       w.Period(),
		TopChampions:      []MonthlyChampion{},
		TopPodiumFinishes: []PodiumEntry{},
		Top10Finishes:     []Top10Entry{},
		MostConsistent:    []MonthlyConsistent{},
		Participation: ParticipationStats{
			TotalUniquePlayers:   t.UniquePlayers(),
			TotalDaysTracked:     days,
			AvgDailyParticipants: t.AvgDailyParticipants(),
		},
		DailyParticipation: t.DailyParticipation(),
	}

	for _, a := range rankBy(players, firstPlaces, byWins, monthlyChampionsN) {
		r.TopChampions = append(r.TopChampions, MonthlyChampion{
			PlayerID:        a.PlayerID,
			DisplayName:     names.Lookup(a.PlayerID),
			FirstPlaceCount: a.FirstPlaceCount,
			WinPercentage:   Percentage(a.FirstPlaceCount, days),
		})
	}
	if len(r.TopChampions) > 0 {
		champ := r.TopChampions[0]
		r.MonthlyChampion = &champ
	}

	for _, a := range rankBy(players, podiums, byCount(podiums), monthlyPodiumN) {
		r.TopPodiumFinishes = append(r.TopPodiumFinishes, PodiumEntry{
			PlayerID:         a.PlayerID,
			DisplayName:      names.Lookup(a.PlayerID),
			PodiumCount:      a.PodiumCount,
			PodiumPercentage: Percentage(a.PodiumCount, days),
		})
	}
	for _, a := range rankBy(players, top10s, byCount(top10s), monthlyTop10N) {
		r.Top10Finishes = append(r.Top10Finishes, Top10Entry{
			PlayerID:    a.PlayerID,
			DisplayName: names.Lookup(a.PlayerID),
			Top10Count:  a.Top10Count,
		})
	}

	r.MostConsistent = monthlyConsistency(players, names, o.consistencyDays)

	if all := t.AllScores(); len(all) > 0 {
		r.ScoreStatistics = &ScoreStatistics{
			TotalScoresRecorded: len(all),
			AverageScore:        int64(Mean(all)),
			HighestScore:        lo.Max(all),
			LowestScore:         lo.Min(all),
		}
	}
	return r
}

// monthlyConsistency ranks by days played times mean score.
func monthlyConsistency(players []*PlayerAggregate, names Names, minDays int) []MonthlyConsistent {
	out := make([]MonthlyConsistent, 0)
	for _, a := range players {
		if a.DaysPlayed < minDays || len(a.Scores) == 0 {
			continue
		}
		avg := a.Average()
		out = append(out, MonthlyConsistent{
			PlayerID:          a.PlayerID,
			DisplayName:       names.Lookup(a.PlayerID),
			DaysPlayed:        a.DaysPlayed,
			AverageScore:      int64(avg),
			MaxScore:          lo.Max(a.Scores),
			MinScore:          lo.Min(a.Scores),
			ConsistencyRating: float64(a.DaysPlayed) * avg,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ConsistencyRating != out[j].ConsistencyRating {
			return out[i].ConsistencyRating > out[j].ConsistencyRating
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if len(out) > monthlyConsistentN {
		out = out[:monthlyConsistentN]
	}
	return out
}
