package stats

import "sort"

const (
	WeeklyConsistencyDays = 3
	weeklyTopN            = 10
	weeklyConsistentN     = 10
)

// WeeklyChampion is the player with the most first places in the week.
type WeeklyChampion struct {
	PlayerID        string  `json:"playfab_id"`
	DisplayName     string  `json:"display_name"`
	FirstPlaceCount int     `json:"first_place_count"`
	WinPercentage   float64 `json:"win_percentage"`
}

// CountEntry is one row of a weekly top list.
type CountEntry struct {
	PlayerID    string `json:"playfab_id"`
	DisplayName string `json:"display_name"`
	Count       int    `json:"count"`
}

// WeeklyConsistent is one row of the weekly consistency ranking.
type WeeklyConsistent struct {
	PlayerID     string `json:"playfab_id"`
	DisplayName  string `json:"display_name"`
	DaysPlayed   int    `json:"days_played"`
	AverageScore int64  `json:"average_score"`
}

// ParticipationStats summarises who showed up in a window.
type ParticipationStats struct {
	TotalUniquePlayers   int     `json:"total_unique_players"`
	TotalDaysTracked     int     `json:"total_days_tracked"`
	AvgDailyParticipants float64 `json:"avg_daily_participants"`
}

// WeeklyReport is an immutable snapshot of one ISO week.
type WeeklyReport struct {
	WeekPeriod         Period                 `json:"week_period"`
	DailyWinners       map[string]DailyWinner `json:"daily_winners"`
	WeeklyChampion     *WeeklyChampion        `json:"weekly_champion"`
	TopFirstPlaces     []CountEntry           `json:"top_first_places"`
	TopPodiumFinishes  []CountEntry           `json:"top_podium_finishes"`
	MostConsistent     []WeeklyConsistent     `json:"most_consistent"`
	TotalUniquePlayers int                    `json:"total_unique_players"`
	Participation      ParticipationStats     `json:"participation_stats"`
	DailyParticipation []DayCount             `json:"daily_participation"`
}

// BuildWeekly aggregates records (sorted by date, position) for window w.
func BuildWeekly(w Window, records []ScoreRecord, names Names, opts ...Option) *WeeklyReport {
	o := newOptions(WeeklyConsistencyDays, opts)
	t := Aggregate(records)
	players := t.Players()
	days := t.DaysTracked()

	r := &WeeklyReport{
		WeekPeriod:         w.Period(),
		DailyWinners:       t.DailyWinners(),
		TopFirstPlaces:     []CountEntry{},
		TopPodiumFinishes:  []CountEntry{},
		MostConsistent:     []WeeklyConsistent{},
		TotalUniquePlayers: t.UniquePlayers(),
		Participation: ParticipationStats{
			TotalUniquePlayers:   t.UniquePlayers(),
			TotalDaysTracked:     days,
			AvgDailyParticipants: t.AvgDailyParticipants(),
		},
		DailyParticipation: t.DailyParticipation(),
	}

	champions := rankBy(players, firstPlaces, byWins, weeklyTopN)
	if len(champions) > 0 {
		c := champions[0]
		r.WeeklyChampion = &WeeklyChampion{
			PlayerID:        c.PlayerID,
			DisplayName:     names.Lookup(c.PlayerID),
			FirstPlaceCount: c.FirstPlaceCount,
			WinPercentage:   Percentage(c.FirstPlaceCount, days),
		}
	}
	for _, a := range champions {
		r.TopFirstPlaces = append(r.TopFirstPlaces, CountEntry{
			PlayerID: a.PlayerID, DisplayName: names.Lookup(a.PlayerID), Count: a.FirstPlaceCount,
		})
	}
	for _, a := range rankBy(players, podiums, byCount(podiums), weeklyTopN) {
		r.TopPodiumFinishes = append(r.TopPodiumFinishes, CountEntry{
			PlayerID: a.PlayerID, DisplayName: names.Lookup(a.PlayerID), Count: a.PodiumCount,
		})
	}

	r.MostConsistent = weeklyConsistency(players, names, o.consistencyDays)
	return r
}

// weeklyConsistency ranks by days played, then mean score.
func weeklyConsistency(players []*PlayerAggregate, names Names, minDays int) []WeeklyConsistent {
	eligible := make([]*PlayerAggregate, 0, len(players))
	for _, a := range players {
		if a.DaysPlayed >= minDays {
			eligible = append(eligible, a)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.DaysPlayed != b.DaysPlayed {
			return a.DaysPlayed > b.DaysPlayed
		}
		if avgA, avgB := a.Average(), b.Average(); avgA != avgB {
			return avgA > avgB
		}
		return a.PlayerID < b.PlayerID
	})
	if len(eligible) > weeklyConsistentN {
		eligible = eligible[:weeklyConsistentN]
	}

	out := make([]WeeklyConsistent, 0, len(eligible))
	for _, a := range eligible {
		out = append(out, WeeklyConsistent{
			PlayerID:     a.PlayerID,
			DisplayName:  names.Lookup(a.PlayerID),
			DaysPlayed:   a.DaysPlayed,
			AverageScore: int64(a.Average()),
		})
	}
	return out
}
