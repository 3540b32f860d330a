// Package tui renders leaderboard reports for the console and runs the
// interactive dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aayushbajaj/fits-stats/internal/analytics"
	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

// Mode selects which report the dashboard shows.
type Mode int

const (
	ModeWeekly Mode = iota
	ModeMonthly
)

const dashboardTopN = 5

// Options carries the report options for each mode.
type Options struct {
	Weekly  []stats.Option
	Monthly []stats.Option
}

type Model struct {
	ctx     context.Context
	src     analytics.Source
	opts    Options
	mode    Mode
	window  stats.Window
	weekly  *stats.WeeklyReport
	monthly *stats.MonthlyReport
	loading bool
	width   int
	height  int
	err     error
}

type reportMsg struct {
	window  stats.Window
	weekly  *stats.WeeklyReport
	monthly *stats.MonthlyReport
	err     error
}

// New starts on the ISO week containing now.
func New(ctx context.Context, src analytics.Source, now time.Time, opts Options) Model {
	return Model{
		ctx:     ctx,
		src:     src,
		opts:    opts,
		mode:    ModeWeekly,
		window:  stats.CurrentWeek(now),
		loading: true,
	}
}

func (m Model) Mode() Mode           { return m.mode }
func (m Model) Window() stats.Window { return m.window }
func (m Model) Err() error           { return m.err }

func (m Model) Init() tea.Cmd {
	return m.fetchReport
}

func (m Model) fetchReport() tea.Msg {
	switch m.mode {
	case ModeMonthly:
		r, err := analytics.Monthly(m.ctx, m.src, m.window, m.opts.Monthly...)
		return reportMsg{window: m.window, monthly: r, err: err}
	default:
		r, err := analytics.Weekly(m.ctx, m.src, m.window, m.opts.Weekly...)
		return reportMsg{window: m.window, weekly: r, err: err}
	}
}

// step moves the window by n periods in the current mode.
func (m Model) step(n int) Model {
	if m.mode == ModeMonthly {
		m.window = stats.CurrentMonth(m.window.Start.AddDate(0, n, 0))
	} else {
		m.window = stats.CurrentWeek(m.window.Start.AddDate(0, 0, 7*n))
	}
	return m
}

// switchMode keeps the dashboard on the period that contains the current
// window's first day.
func (m Model) switchMode(mode Mode) Model {
	if m.mode == mode {
		return m
	}
	m.mode = mode
	if mode == ModeMonthly {
		m.window = stats.CurrentMonth(m.window.Start)
	} else {
		m.window = stats.CurrentWeek(m.window.Start)
	}
	return m
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	return m, m.fetchReport
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m.reload()
		case "w":
			return m.switchMode(ModeWeekly).reload()
		case "m":
			return m.switchMode(ModeMonthly).reload()
		case "h", "left":
			return m.step(-1).reload()
		case "l", "right":
			return m.step(1).reload()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case reportMsg:
		// Drop replies for a period the user has already moved away from.
		if msg.window != m.window {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.weekly = msg.weekly
		m.monthly = msg.monthly
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🏁 FITS Leaderboard"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(statLabelStyle.Render(m.periodLabel()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	case m.loading:
		b.WriteString("Loading...\n")
	case m.mode == ModeMonthly && m.monthly != nil:
		b.WriteString(m.renderMonthly())
	case m.mode == ModeWeekly && m.weekly != nil:
		b.WriteString(m.renderWeekly())
	}

	b.WriteString(helpStyle.Render("w: weekly • m: monthly • h/l: prev/next • r: refresh • q: quit"))
	return b.String()
}

func (m Model) renderTabs() string {
	weekly, monthly := tabStyle, tabStyle
	if m.mode == ModeMonthly {
		monthly = activeTabStyle
	} else {
		weekly = activeTabStyle
	}
	return weekly.Render("Weekly") + monthly.Render("Monthly")
}

func (m Model) periodLabel() string {
	if m.mode == ModeMonthly {
		return fmt.Sprintf("%s  (%s to %s)", MonthTitle(m.window.Period()), m.window.StartDate(), m.window.EndDate())
	}
	return fmt.Sprintf("%s  (%s to %s)", stats.ISOWeekLabel(m.window), m.window.StartDate(), m.window.EndDate())
}

func (m Model) renderWeekly() string {
	r := m.weekly
	if r.WeeklyChampion == nil {
		return mutedStyle.Render("No scores recorded this week") + "\n"
	}

	c := r.WeeklyChampion
	champ := fmt.Sprintf("%s\n%s %s\n%s %s",
		championStyle.Render("🏆 "+c.DisplayName),
		statLabelStyle.Render("Wins:"),
		statValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", c.FirstPlaceCount, c.WinPercentage)),
		statLabelStyle.Render("Players:"),
		statValueStyle.Render(stats.FormatCount(int64(r.TotalUniquePlayers))),
	)

	wins := make([]string, 0, dashboardTopN)
	for i, p := range r.TopFirstPlaces {
		if i == dashboardTopN {
			break
		}
		wins = append(wins, rankLine(i, p.DisplayName, fmt.Sprintf("%d", p.Count)))
	}
	podiums := make([]string, 0, dashboardTopN)
	for i, p := range r.TopPodiumFinishes {
		if i == dashboardTopN {
			break
		}
		podiums = append(podiums, rankLine(i, p.DisplayName, fmt.Sprintf("%d", p.Count)))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render("Champion\n"+champ),
		boxStyle.Render("First Places\n"+strings.Join(wins, "\n")),
		boxStyle.Render("Podiums\n"+strings.Join(podiums, "\n")),
	)
	return row + "\n\n" + m.renderParticipation(r.DailyParticipation) + "\n"
}

func (m Model) renderMonthly() string {
	r := m.monthly
	if r.MonthlyChampion == nil {
		return mutedStyle.Render("No scores recorded this month") + "\n"
	}

	c := r.MonthlyChampion
	champ := fmt.Sprintf("%s\n%s %s\n%s %s",
		championStyle.Render("🏆 "+c.DisplayName),
		statLabelStyle.Render("Wins:"),
		statValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", c.FirstPlaceCount, c.WinPercentage)),
		statLabelStyle.Render("Players:"),
		statValueStyle.Render(stats.FormatCount(int64(r.Participation.TotalUniquePlayers))),
	)
	if s := r.ScoreStatistics; s != nil {
		champ += fmt.Sprintf("\n%s %s",
			statLabelStyle.Render("High score:"),
			statValueStyle.Render(stats.FormatCount(s.HighestScore)),
		)
	}

	wins := make([]string, 0, dashboardTopN)
	for i, p := range r.TopChampions {
		if i == dashboardTopN {
			break
		}
		wins = append(wins, rankLine(i, p.DisplayName, fmt.Sprintf("%d", p.FirstPlaceCount)))
	}
	consistent := make([]string, 0, dashboardTopN)
	for i, p := range r.MostConsistent {
		if i == dashboardTopN {
			break
		}
		consistent = append(consistent, rankLine(i, p.DisplayName, fmt.Sprintf("%dd", p.DaysPlayed)))
	}
	if len(consistent) == 0 {
		consistent = append(consistent, mutedStyle.Render("Nobody yet"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render("Champion\n"+champ),
		boxStyle.Render("Top Champions\n"+strings.Join(wins, "\n")),
		boxStyle.Render("Most Consistent\n"+strings.Join(consistent, "\n")),
	)
	return row + "\n\n" + m.renderParticipation(r.DailyParticipation) + "\n"
}

func rankLine(i int, name, value string) string {
	return fmt.Sprintf("%s %-18s %s",
		statLabelStyle.Render(fmt.Sprintf("%2d.", i+1)),
		truncate(name, 18),
		statValueStyle.Render(value),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) renderParticipation(days []stats.DayCount) string {
	if len(days) == 0 {
		return statLabelStyle.Render("Daily Participation:") + "\nNo data"
	}

	maxCount := 0
	for _, d := range days {
		if d.Participants > maxCount {
			maxCount = d.Participants
		}
	}

	bars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var graph strings.Builder
	graph.WriteString(statLabelStyle.Render("Daily Participation:"))
	graph.WriteString("\n")

	for _, d := range days {
		idx := 0
		if maxCount > 0 {
			idx = int(float64(d.Participants) / float64(maxCount) * float64(len(bars)-1))
		}
		if d.Participants > 0 && idx == 0 {
			idx = 1
		}
		graph.WriteString(graphStyle.Render(bars[idx]))
		graph.WriteString(" ")
	}
	graph.WriteString("\n")
	graph.WriteString(statLabelStyle.Render(fmt.Sprintf("%s to %s, peak %d", days[0].Date, days[len(days)-1].Date, maxCount)))

	return graph.String()
}
