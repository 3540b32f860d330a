package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aayushbajaj/fits-stats/internal/analytics"
	"github.com/aayushbajaj/fits-stats/internal/chart"
	"github.com/aayushbajaj/fits-stats/internal/config"
	"github.com/aayushbajaj/fits-stats/internal/datearg"
	"github.com/aayushbajaj/fits-stats/internal/export"
	"github.com/aayushbajaj/fits-stats/internal/logger"
	"github.com/aayushbajaj/fits-stats/internal/lookup"
	"github.com/aayushbajaj/fits-stats/internal/storage"
	"github.com/aayushbajaj/fits-stats/internal/tui"
	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

var (
	cfg *config.Config

	// Persistent flags
	dbPath   string
	theme    string
	logLevel string

	// Flags for export command
	exportFormat string
	exportType   string
	exportStart  string
	exportEnd    string
	exportOutput string

	// Flags for today command
	todayDate string

	// Flags for report commands
	weekFlag    string
	monthFlag   string
	reportOut   string
	reportChart string
)

var rootCmd = &cobra.Command{
	Use:   "fitsstats",
	Short: "Fights in Tight Spaces leaderboard analytics",
	Long: `Weekly and monthly statistics and data exports over the daily
leaderboard snapshots. Run without a subcommand for the interactive dashboard.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leaderboard data to CSV, JSON or XLSX",
	Long: `Export raw daily scores or lifetime player summaries.

Examples:
  fitsstats export                                   # All scores as CSV
  fitsstats export --format json --type players      # Player summaries as JSON
  fitsstats export --start-date 2024-01-01 --end-date 2024-01-31
  fitsstats export --start-date "last monday" -o week.xlsx --format xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show statistics for an ISO week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWeekly(cmd.Context())
	},
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show statistics for a calendar month",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonthly(cmd.Context())
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the daily leaderboard winner (default: today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToday(cmd.Context())
	},
}

var playersCmd = &cobra.Command{
	Use:   "players [QUERY]",
	Short: "List lifetime player summaries, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return runPlayers(cmd.Context(), query)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the leaderboard database (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Color theme: "+strings.Join(tui.ThemeNames, ", "))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatCSV), "Output format: csv, json or xlsx")
	exportCmd.Flags().StringVar(&exportType, "type", analytics.TypeScores, "Data type: scores (daily leaderboard) or players (summary)")
	exportCmd.Flags().StringVar(&exportStart, "start-date", "", "Start date for scores export (YYYY-MM-DD or e.g. \"last monday\")")
	exportCmd.Flags().StringVar(&exportEnd, "end-date", "", "End date for scores export (YYYY-MM-DD or e.g. \"yesterday\")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: auto-generated)")

	weeklyCmd.Flags().StringVar(&weekFlag, "week", "", "Week in YYYY-WW format (default: current week)")
	weeklyCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Save results to a JSON file")
	weeklyCmd.Flags().StringVar(&reportChart, "chart", "", "Save a participation chart to a PNG file")

	monthlyCmd.Flags().StringVar(&monthFlag, "month", "", "Month in YYYY-MM format (default: current month)")
	monthlyCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Save results to a JSON file")
	monthlyCmd.Flags().StringVar(&reportChart, "chart", "", "Save a participation chart to a PNG file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(monthlyCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Day to show (YYYY-MM-DD or e.g. \"yesterday\")")

	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(playersCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("db") {
		loaded.DBPath = dbPath
	}
	if flags.Changed("theme") {
		loaded.Theme = theme
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	if err := logger.Configure(os.Stderr, loaded.LogLevel, loaded.LogFile); err != nil {
		return err
	}
	if !tui.SetTheme(loaded.Theme) {
		log.Warn().Str("theme", loaded.Theme).Strs("available", tui.ThemeNames).Msg("Unknown theme, using default")
	}

	cfg = loaded
	log.Debug().Str("db_path", cfg.DBPath).Str("command", cmd.Name()).Msg("Configuration loaded")
	return nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnreachable) {
			log.Debug().Stack().Err(err).Msg("Store unreachable")
			return nil, fmt.Errorf("database not found at %s: %w", cfg.DBPath, storage.ErrStoreUnreachable)
		}
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}

func runDashboard(ctx context.Context) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := tui.New(ctx, store, time.Now(), tui.Options{
		Weekly:  []stats.Option{stats.WithConsistencyDays(cfg.WeekConsistencyDays)},
		Monthly: []stats.Option{stats.WithConsistencyDays(cfg.MonthConsistencyDays)},
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func runExport(ctx context.Context) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if exportType != analytics.TypeScores && exportType != analytics.TypePlayers {
		return fmt.Errorf("unknown export type %q (want %s or %s)", exportType, analytics.TypeScores, analytics.TypePlayers)
	}
	now := time.Now()
	start, end, err := datearg.Range(exportStart, exportEnd, now)
	if err != nil {
		return err
	}
	if exportType == analytics.TypePlayers && (start != "" || end != "") {
		log.Warn().Msg("--start-date and --end-date only apply to scores exports; ignoring")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	output := exportOutput
	if output == "" {
		output = export.DefaultFilename(exportType, format, now)
	}
	fmt.Printf("Exporting %s data to %s...\n", exportType, output)

	records, err := analytics.Records(ctx, store, exportType, start, end)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d %s records\n", len(records), strings.TrimSuffix(exportType, "s"))

	if err := export.WriteFile(output, format, records); err != nil {
		if errors.Is(err, export.ErrEmptyInput) {
			log.Warn().Str("format", string(format)).Msg("Nothing to write, skipped file creation")
			fmt.Println("No records to export")
			return nil
		}
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Println("✓ Export completed successfully")
	fmt.Printf("  Output: %s\n", output)
	fmt.Printf("  Records: %d\n", len(records))
	return nil
}

func runWeekly(ctx context.Context) error {
	w := stats.CurrentWeek(time.Now())
	if weekFlag != "" {
		parsed, err := stats.ParseWeek(weekFlag)
		if err != nil {
			return err
		}
		w = parsed
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Calculating weekly statistics for week %s\n", stats.ISOWeekLabel(w))
	fmt.Printf("Date range: %s to %s\n\n", w.StartDate(), w.EndDate())

	report, err := analytics.Weekly(ctx, store, w, stats.WithConsistencyDays(cfg.WeekConsistencyDays))
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderWeekly(report))

	return saveOutputs(report, stats.ISOWeekLabel(w), report.DailyParticipation)
}

func runMonthly(ctx context.Context) error {
	w := stats.CurrentMonth(time.Now())
	if monthFlag != "" {
		parsed, err := stats.ParseMonth(monthFlag)
		if err != nil {
			return err
		}
		w = parsed
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	title := tui.MonthTitle(w.Period())
	fmt.Printf("Calculating monthly statistics for %s\n", title)
	fmt.Printf("Date range: %s to %s\n\n", w.StartDate(), w.EndDate())

	report, err := analytics.Monthly(ctx, store, w, stats.WithConsistencyDays(cfg.MonthConsistencyDays))
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderMonthly(report))

	return saveOutputs(report, title, report.DailyParticipation)
}

func runToday(ctx context.Context) error {
	now := time.Now()
	date, err := datearg.Parse(todayDate, now)
	if err != nil {
		return err
	}
	w := stats.Day(now)
	if date != "" {
		day, err := time.Parse(stats.DateLayout, date)
		if err != nil {
			return err
		}
		w = stats.Day(day)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := analytics.Weekly(ctx, store, w, stats.WithConsistencyDays(1))
	if err != nil {
		return err
	}
	fmt.Print(tui.RenderDaily(w.StartDate(), report))
	return nil
}

// saveOutputs writes the --output JSON dump and the --chart PNG when asked.
func saveOutputs(report any, title string, days []stats.DayCount) error {
	if reportOut != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(reportOut, data, 0644); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		fmt.Printf("✓ Results saved to %s\n", reportOut)
	}

	if reportChart != "" {
		img, err := chart.Participation("Daily participation "+title, days)
		if err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		if err := os.WriteFile(reportChart, img, 0644); err != nil {
			return fmt.Errorf("failed to save chart: %w", err)
		}
		fmt.Printf("✓ Chart saved to %s\n", reportChart)
	}
	return nil
}

func runPlayers(ctx context.Context, query string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.FetchPlayerSummaries(ctx)
	if err != nil {
		return fmt.Errorf("failed to get player summaries: %w", err)
	}

	matches := lookup.Find(query, summaries)
	if len(matches) == 0 {
		fmt.Printf("No players matching %q\n", query)
		return nil
	}

	fmt.Printf("%-30s %6s %6s %8s %8s %10s\n", "Player", "Days", "Wins", "Podiums", "Top 10", "Avg")
	fmt.Println(strings.Repeat("─", 73))
	for _, m := range matches {
		p := analytics.PlayerRecord(m.Player)
		avg, _ := p.Get("average_score")
		fmt.Printf("%-30s %6d %6d %8d %8d %10.2f\n",
			m.Player.DisplayName,
			m.Player.TotalDaysPlayed,
			m.Player.FirstPlaceCount,
			m.Player.PodiumCount,
			m.Player.Top10Count,
			avg,
		)
	}
	return nil
}
