// Package analytics wires the store to the report builders and exporters.
package analytics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aayushbajaj/fits-stats/internal/export"
	"github.com/aayushbajaj/fits-stats/internal/storage"
	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

// Source is the query surface of the leaderboard store.
type Source interface {
	FetchScores(ctx context.Context, w stats.Window) ([]stats.ScoreRecord, error)
	FetchDisplayNames(ctx context.Context) (stats.Names, error)
	ExportScores(ctx context.Context, start, end string) ([]storage.DailyScore, error)
	FetchPlayerSummaries(ctx context.Context) ([]storage.PlayerSummary, error)
}

var _ Source = (*storage.Store)(nil)

// Export types accepted by --type.
const (
	TypeScores  = "scores"
	TypePlayers = "players"
)

func load(ctx context.Context, src Source, w stats.Window) ([]stats.ScoreRecord, stats.Names, error) {
	records, err := src.FetchScores(ctx, w)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch scores for %s: %w", w, err)
	}
	names, err := src.FetchDisplayNames(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch display names: %w", err)
	}
	return records, names, nil
}

// Weekly builds the report for an ISO week window.
func Weekly(ctx context.Context, src Source, w stats.Window, opts ...stats.Option) (*stats.WeeklyReport, error) {
	records, names, err := load(ctx, src, w)
	if err != nil {
		return nil, err
	}
	return stats.BuildWeekly(w, records, names, opts...), nil
}

// Monthly builds the report for a calendar month window.
func Monthly(ctx context.Context, src Source, w stats.Window, opts ...stats.Option) (*stats.MonthlyReport, error) {
	records, names, err := load(ctx, src, w)
	if err != nil {
		return nil, err
	}
	return stats.BuildMonthly(w, records, names, opts...), nil
}

// ScoreRecords returns raw score rows as export records.
func ScoreRecords(ctx context.Context, src Source, start, end string) ([]export.Record, error) {
	rows, err := src.ExportScores(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to export scores: %w", err)
	}
	out := make([]export.Record, 0, len(rows))
	for _, d := range rows {
		out = append(out, export.Record{
			{Key: "stat_date", Value: d.StatDate},
			{Key: "statistic_name", Value: d.StatisticName},
			{Key: "position", Value: d.Position},
			{Key: "score", Value: d.Score},
			{Key: "playfab_id", Value: d.PlayfabID},
			{Key: "display_name", Value: d.DisplayName},
			{Key: "platform", Value: nullString(d.Platform)},
			{Key: "platform_user_id", Value: nullString(d.PlatformUserID)},
		})
	}
	return out, nil
}

// PlayerRecords returns lifetime player summaries as export records.
func PlayerRecords(ctx context.Context, src Source) ([]export.Record, error) {
	summaries, err := src.FetchPlayerSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export players: %w", err)
	}
	out := make([]export.Record, 0, len(summaries))
	for _, p := range summaries {
		out = append(out, PlayerRecord(p))
	}
	return out, nil
}

// PlayerRecord flattens one summary. A player with no scores averages 0.
func PlayerRecord(p storage.PlayerSummary) export.Record {
	avg := 0.0
	if p.AverageScore.Valid {
		avg = stats.Round2(p.AverageScore.Float64)
	}
	return export.Record{
		{Key: "playfab_id", Value: p.PlayfabID},
		{Key: "display_name", Value: p.DisplayName},
		{Key: "platform", Value: nullString(p.Platform)},
		{Key: "platform_user_id", Value: nullString(p.PlatformUserID)},
		{Key: "first_seen", Value: nullString(p.FirstSeen)},
		{Key: "last_seen", Value: nullString(p.LastSeen)},
		{Key: "total_days_played", Value: p.TotalDaysPlayed},
		{Key: "first_place_count", Value: p.FirstPlaceCount},
		{Key: "podium_count", Value: p.PodiumCount},
		{Key: "top_10_count", Value: p.Top10Count},
		{Key: "average_score", Value: avg},
		{Key: "max_score", Value: nullInt(p.MaxScore)},
		{Key: "min_score", Value: nullInt(p.MinScore)},
	}
}

// Records dispatches on the export type.
func Records(ctx context.Context, src Source, kind, start, end string) ([]export.Record, error) {
	switch kind {
	case TypeScores:
		return ScoreRecords(ctx, src, start, end)
	case TypePlayers:
		return PlayerRecords(ctx, src)
	}
	return nil, fmt.Errorf("unknown export type %q (want %s or %s)", kind, TypeScores, TypePlayers)
}

func nullString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullInt(n sql.NullInt64) any {
	if !n.Valid {
		return nil
	}
	return n.Int64
}
