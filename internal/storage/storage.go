package storage

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/aayushbajaj/fits-stats/pkg/stats"
)

// ErrStoreUnreachable is returned when the database file is missing or
// cannot be opened.
var ErrStoreUnreachable = errors.New("store unreachable")

// Store is a read-only view over the leaderboard database.
type Store struct {
	db *sql.DB
}

// DailyScore is one row of daily_scores joined with its player.
type DailyScore struct {
	StatDate       string
	StatisticName  string
	Position       int
	Score          int64
	PlayfabID      string
	DisplayName    string
	Platform       sql.NullString
	PlatformUserID sql.NullString
}

// Record narrows the row to what the aggregator needs.
func (d DailyScore) Record() stats.ScoreRecord {
	return stats.ScoreRecord{
		Date:        d.StatDate,
		PlayerID:    d.PlayfabID,
		Position:    d.Position,
		Score:       d.Score,
		DisplayName: d.DisplayName,
	}
}

// PlayerSummary holds a player's lifetime totals.
type PlayerSummary struct {
	PlayfabID       string
	DisplayName     string
	Platform        sql.NullString
	PlatformUserID  sql.NullString
	FirstSeen       sql.NullString
	LastSeen        sql.NullString
	TotalDaysPlayed int
	FirstPlaceCount int
	PodiumCount     int
	Top10Count      int
	AverageScore    sql.NullFloat64
	MaxScore        sql.NullInt64
	MinScore        sql.NullInt64
}

// Open opens the database at path read-only. The file must already exist.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.Wrap(ErrStoreUnreachable, "database path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(ErrStoreUnreachable, "database not found at %s", path)
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, errors.Wrapf(ErrStoreUnreachable, "open %s: %v", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(ErrStoreUnreachable, "ping %s: %v", path, err)
	}

	return &Store{db: db}, nil
}

// readOnlyDSN builds a file: URI so that '?', '#' and '%' in the path are
// escaped and mode=ro always reaches SQLite.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path // C:/data -> /C:/data
	}
	return (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
}

// InitSchema creates the tables the store reads from. The store itself never
// writes; this exists for fixtures.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		playfab_id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		platform TEXT,
		platform_user_id TEXT,
		first_seen TEXT,
		last_seen TEXT
	);

	CREATE TABLE IF NOT EXISTS daily_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stat_date TEXT NOT NULL,
		statistic_name TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		score INTEGER NOT NULL,
		playfab_id TEXT NOT NULL REFERENCES players(playfab_id)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_scores_date ON daily_scores(stat_date, position);
	CREATE INDEX IF NOT EXISTS idx_daily_scores_player ON daily_scores(playfab_id);
	`
	_, err := db.Exec(schema)
	return err
}

// FetchScores returns the window's records ordered by date, then position.
func (s *Store) FetchScores(ctx context.Context, w stats.Window) ([]stats.ScoreRecord, error) {
	rows, err := s.ExportScores(ctx, w.StartDate(), w.EndDate())
	if err != nil {
		return nil, err
	}

	records := make([]stats.ScoreRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records, nil
}

// ExportScores returns joined score rows between start and end inclusive.
// Either bound may be empty to leave that side open.
func (s *Store) ExportScores(ctx context.Context, start, end string) ([]DailyScore, error) {
	query := `
		SELECT
			ds.stat_date,
			ds.statistic_name,
			ds.position,
			ds.score,
			ds.playfab_id,
			p.display_name,
			p.platform,
			p.platform_user_id
		FROM daily_scores ds
		JOIN players p ON ds.playfab_id = p.playfab_id`

	var conditions []string
	var args []any
	if start != "" {
		conditions = append(conditions, "ds.stat_date >= ?")
		args = append(args, start)
	}
	if end != "" {
		conditions = append(conditions, "ds.stat_date <= ?")
		args = append(args, end)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ds.stat_date, ds.position, ds.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query daily scores")
	}
	defer rows.Close()

	var out []DailyScore
	for rows.Next() {
		var d DailyScore
		if err := rows.Scan(
			&d.StatDate, &d.StatisticName, &d.Position, &d.Score,
			&d.PlayfabID, &d.DisplayName, &d.Platform, &d.PlatformUserID,
		); err != nil {
			return nil, errors.Wrap(err, "scan daily score")
		}
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "iterate daily scores")
}

// FetchDisplayNames returns every known player's display name.
func (s *Store) FetchDisplayNames(ctx context.Context) (stats.Names, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT playfab_id, display_name FROM players")
	if err != nil {
		return nil, errors.Wrap(err, "query players")
	}
	defer rows.Close()

	names := make(stats.Names)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(err, "scan player")
		}
		names[id] = name
	}
	return names, errors.Wrap(rows.Err(), "iterate players")
}

// FetchPlayerSummaries returns lifetime totals per player, most active first.
func (s *Store) FetchPlayerSummaries(ctx context.Context) ([]PlayerSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			p.playfab_id,
			p.display_name,
			p.platform,
			p.platform_user_id,
			p.first_seen,
			p.last_seen,
			COUNT(ds.stat_date) AS total_days_played,
			COUNT(CASE WHEN ds.position = 0 THEN 1 END) AS first_place_count,
			COUNT(CASE WHEN ds.position <= 2 THEN 1 END) AS podium_count,
			COUNT(CASE WHEN ds.position <= 9 THEN 1 END) AS top_10_count,
			AVG(ds.score) AS average_score,
			MAX(ds.score) AS max_score,
			MIN(ds.score) AS min_score
		FROM players p
		LEFT JOIN daily_scores ds ON p.playfab_id = ds.playfab_id
		GROUP BY p.playfab_id
		ORDER BY total_days_played DESC, average_score DESC, p.playfab_id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query player summaries")
	}
	defer rows.Close()

	var out []PlayerSummary
	for rows.Next() {
		var p PlayerSummary
		if err := rows.Scan(
			&p.PlayfabID, &p.DisplayName, &p.Platform, &p.PlatformUserID,
			&p.FirstSeen, &p.LastSeen,
			&p.TotalDaysPlayed, &p.FirstPlaceCount, &p.PodiumCount, &p.Top10Count,
			&p.AverageScore, &p.MaxScore, &p.MinScore,
		); err != nil {
			return nil, errors.Wrap(err, "scan player summary")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "iterate player summaries")
}

func (s *Store) Close() error {
	return s.db.Close()
}
