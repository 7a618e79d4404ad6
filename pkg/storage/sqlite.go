package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sunplan/sunplan/pkg/types"

	_ "modernc.org/sqlite"
)

// SQLite stores records as JSON blobs in a local sqlite database, keyed by an
// RFC3339 UTC timestamp so range scans work with plain string comparison.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS forecasts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		forecast TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS advice (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		advice_type TEXT NOT NULL,
		advice TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_forecasts_ts ON forecasts(ts);
	CREATE INDEX IF NOT EXISTS idx_advice_ts ON advice(ts);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// InsertForecast records a calculated forecast.
func (s *SQLite) InsertForecast(ctx context.Context, rec types.ForecastRecord) error {
	blob, err := json.Marshal(rec.Forecast)
	if err != nil {
		return fmt.Errorf("marshaling forecast: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO forecasts (ts, forecast) VALUES (?, ?)`,
		rec.TS.UTC().Format(time.RFC3339), string(blob))
	return err
}

// InsertAdvice records a charging advice.
func (s *SQLite) InsertAdvice(ctx context.Context, rec types.AdviceRecord) error {
	blob, err := json.Marshal(rec.Advice)
	if err != nil {
		return fmt.Errorf("marshaling advice: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO advice (ts, advice_type, advice) VALUES (?, ?, ?)`,
		rec.TS.UTC().Format(time.RFC3339), string(rec.Type), string(blob))
	return err
}

// GetForecastHistory returns recorded forecasts with start <= ts < end in
// ascending order.
func (s *SQLite) GetForecastHistory(ctx context.Context, start, end time.Time) ([]types.ForecastRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, forecast FROM forecasts WHERE ts >= ? AND ts < ? ORDER BY ts`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []types.ForecastRecord
	for rows.Next() {
		var tsStr, blob string
		if err := rows.Scan(&tsStr, &blob); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing stored timestamp %q: %w", tsStr, err)
		}
		rec := types.ForecastRecord{TS: ts}
		if err := json.Unmarshal([]byte(blob), &rec.Forecast); err != nil {
			return nil, fmt.Errorf("unmarshaling stored forecast: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetAdviceHistory returns recorded advices with start <= ts < end in
// ascending order.
func (s *SQLite) GetAdviceHistory(ctx context.Context, start, end time.Time) ([]types.AdviceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, advice_type, advice FROM advice WHERE ts >= ? AND ts < ? ORDER BY ts`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []types.AdviceRecord
	for rows.Next() {
		var tsStr, adviceType, blob string
		if err := rows.Scan(&tsStr, &adviceType, &blob); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing stored timestamp %q: %w", tsStr, err)
		}
		rec := types.AdviceRecord{TS: ts, Type: types.AdviceType(adviceType)}
		if err := json.Unmarshal([]byte(blob), &rec.Advice); err != nil {
			return nil, fmt.Errorf("unmarshaling stored advice: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
