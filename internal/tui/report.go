package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

const (
	weeklyRuleWidth  = 60
	monthlyRuleWidth = 70
)

func rule(width int) string {
	return headingStyle.Render(strings.Repeat("=", width))
}

// RenderWeekly formats a weekly report for the console.
func RenderWeekly(r *stats.WeeklyReport) string {
	var b strings.Builder

	b.WriteString(rule(weeklyRuleWidth) + "\n")
	b.WriteString(headingStyle.Render("WEEKLY STATISTICS") + "\n")
	b.WriteString(rule(weeklyRuleWidth) + "\n\n")

	if c := r.WeeklyChampion; c != nil {
		b.WriteString(championStyle.Render("🏆 Weekly Champion: "+c.DisplayName) + "\n")
		fmt.Fprintf(&b, "   First place wins: %d\n\n", c.FirstPlaceCount)
	}

	b.WriteString("Daily Winners:\n")
	dates := lo.Keys(r.DailyWinners)
	sort.Strings(dates)
	for _, date := range dates {
		w := r.DailyWinners[date]
		fmt.Fprintf(&b, "  %s: %s (%d points)\n", date, w.DisplayName, w.Score)
	}
	b.WriteString("\n")

	b.WriteString("Top 10 - First Place Finishes:\n")
	for i, p := range r.TopFirstPlaces {
		fmt.Fprintf(&b, "  %2d. %-30s - %d wins\n", i+1, p.DisplayName, p.Count)
	}
	b.WriteString("\n")

	b.WriteString("Top 10 - Podium Finishes (Top 3):\n")
	for i, p := range r.TopPodiumFinishes {
		fmt.Fprintf(&b, "  %2d. %-30s - %d podiums\n", i+1, p.DisplayName, p.Count)
	}
	b.WriteString("\n")

	b.WriteString("Most Consistent Players:\n")
	for i, p := range r.MostConsistent {
		fmt.Fprintf(&b, "  %2d. %-30s - %d days, avg %d pts\n", i+1, p.DisplayName, p.DaysPlayed, p.AverageScore)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total unique players: %d\n", r.TotalUniquePlayers)
	return b.String()
}

// RenderMonthly formats a monthly report for the console.
func RenderMonthly(r *stats.MonthlyReport) string {
	var b strings.Builder

	b.WriteString(rule(monthlyRuleWidth) + "\n")
	b.WriteString(headingStyle.Render("MONTHLY STATISTICS - "+strings.ToUpper(MonthTitle(r.MonthPeriod))) + "\n")
	b.WriteString(rule(monthlyRuleWidth) + "\n\n")

	if c := r.MonthlyChampion; c != nil {
		b.WriteString(championStyle.Render("🏆 Monthly Champion: "+c.DisplayName) + "\n")
		fmt.Fprintf(&b, "   First place wins: %d (%.1f%%)\n\n", c.FirstPlaceCount, c.WinPercentage)
	}

	b.WriteString("Top 10 - Monthly Champions:\n")
	for i, p := range r.TopChampions {
		fmt.Fprintf(&b, "  %2d. %-30s - %2d wins (%5.1f%%)\n", i+1, p.DisplayName, p.FirstPlaceCount, p.WinPercentage)
	}
	b.WriteString("\n")

	b.WriteString("Top 10 - Podium Finishes (Top 3):\n")
	for i, p := range r.TopPodiumFinishes {
		fmt.Fprintf(&b, "  %2d. %-30s - %2d podiums (%5.1f%%)\n", i+1, p.DisplayName, p.PodiumCount, p.PodiumPercentage)
	}
	b.WriteString("\n")

	b.WriteString("Most Consistent Players:\n")
	for i, p := range r.MostConsistent {
		fmt.Fprintf(&b, "  %2d. %-30s - %2d days, avg %5d pts\n", i+1, p.DisplayName, p.DaysPlayed, p.AverageScore)
	}
	b.WriteString("\n")

	ps := r.Participation
	b.WriteString("Participation Statistics:\n")
	fmt.Fprintf(&b, "  Total unique players: %d\n", ps.TotalUniquePlayers)
	fmt.Fprintf(&b, "  Days tracked: %d\n", ps.TotalDaysTracked)
	fmt.Fprintf(&b, "  Average daily participants: %.1f\n", ps.AvgDailyParticipants)

	if s := r.ScoreStatistics; s != nil {
		b.WriteString("\nScore Statistics:\n")
		fmt.Fprintf(&b, "  Total scores recorded: %d\n", s.TotalScoresRecorded)
		fmt.Fprintf(&b, "  Average score: %d\n", s.AverageScore)
		fmt.Fprintf(&b, "  Highest score: %d\n", s.HighestScore)
		fmt.Fprintf(&b, "  Lowest score: %d\n", s.LowestScore)
	}
	return b.String()
}

// MonthTitle returns "March 2024" for a period starting on 2024-03-01.
func MonthTitle(p stats.Period) string {
	t, err := time.Parse(stats.DateLayout, p.StartDate)
	if err != nil {
		return p.StartDate
	}
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// RenderDaily formats the winner and turnout of a single day.
func RenderDaily(date string, r *stats.WeeklyReport) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Daily leaderboard for "+date) + "\n")
	w, ok := r.DailyWinners[date]
	if !ok {
		b.WriteString("No scores recorded\n")
		return b.String()
	}
	b.WriteString(championStyle.Render(fmt.Sprintf("🏆 Winner: %s (%d points)", w.DisplayName, w.Score)) + "\n")
	fmt.Fprintf(&b, "Participants: %d\n", r.TotalUniquePlayers)
	return b.String()
}
