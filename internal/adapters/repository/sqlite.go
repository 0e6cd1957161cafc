package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS goalkeepers (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	height_cm        INTEGER NOT NULL,
	span_cm          INTEGER NOT NULL,
	position         TEXT NOT NULL DEFAULT '',
	lateral_speed_ms REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS opponents (
	id                       TEXT PRIMARY KEY,
	name                     TEXT NOT NULL,
	ranking                  INTEGER NOT NULL,
	goals_per_game           REAL NOT NULL DEFAULT 0,
	shot_speed_kmh           REAL NOT NULL,
	high_pct                 REAL NOT NULL,
	mid_pct                  REAL NOT NULL,
	low_pct                  REAL NOT NULL,
	first_line_efficacy_pct  REAL NOT NULL DEFAULT 0,
	second_line_efficacy_pct REAL NOT NULL DEFAULT 0,
	fast_breaks_per_game     REAL NOT NULL DEFAULT 0,
	offensive_style          TEXT NOT NULL DEFAULT '',
	CHECK (high_pct >= 0 AND mid_pct >= 0 AND low_pct >= 0 AND high_pct + mid_pct + low_pct <= 100)
);
`

const (
	goalkeeperColumns = `id, name, height_cm, span_cm, position, lateral_speed_ms`
	opponentColumns   = `id, name, ranking, goals_per_game, shot_speed_kmh, high_pct, mid_pct, low_pct,
	first_line_efficacy_pct, second_line_efficacy_pct, fast_breaks_per_game, offensive_style`
)

// SQLiteStore is a Repository backed by a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path. ":memory:" opens a private
// in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path must not be empty")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive across queries
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// EnsureSchema creates the tables if they do not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Import upserts the given records in one transaction. It is meant for
// seeding; the service itself only reads.
func (s *SQLiteStore) Import(ctx context.Context, gks []model.Goalkeeper, ops []model.Opponent) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, g := range gks {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO goalkeepers (`+goalkeeperColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.HeightCM, g.SpanCM, g.Position, g.LateralSpeedM,
		); err != nil {
			return fmt.Errorf("failed to insert goalkeeper %q: %w", g.ID, err)
		}
	}
	for _, o := range ops {
		if err = o.Validate(); err != nil {
			return fmt.Errorf("opponent %q: %w", o.ID, err)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO opponents (`+opponentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.Name, o.Ranking, o.GoalsPerGame, o.ShotSpeedKMH, o.HighPct, o.MidPct, o.LowPct,
			o.FirstLineEfficacy, o.SecondLineEfficacy, o.FastBreaksPerGame, o.OffensiveStyle,
		); err != nil {
			return fmt.Errorf("failed to insert opponent %q: %w", o.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoalkeeper(r scanner) (model.Goalkeeper, error) {
	var g model.Goalkeeper
	err := r.Scan(&g.ID, &g.Name, &g.HeightCM, &g.SpanCM, &g.Position, &g.LateralSpeedM)
	return g, err
}

func scanOpponent(r scanner) (model.Opponent, error) {
	var o model.Opponent
	err := r.Scan(&o.ID, &o.Name, &o.Ranking, &o.GoalsPerGame, &o.ShotSpeedKMH, &o.HighPct, &o.MidPct, &o.LowPct,
		&o.FirstLineEfficacy, &o.SecondLineEfficacy, &o.FastBreaksPerGame, &o.OffensiveStyle)
	return o, err
}

func observe(query string, start time.Time) {
	metrics.RecordRepositoryQueryLatency(query, float64(time.Since(start).Microseconds())/1000.0)
}

func (s *SQLiteStore) Goalkeeper(ctx context.Context, id string) (model.Goalkeeper, error) {
	defer observe("goalkeeper", time.Now())
	row := s.db.QueryRowContext(ctx, `SELECT `+goalkeeperColumns+` FROM goalkeepers WHERE id = ?`, id)
	g, err := scanGoalkeeper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Goalkeeper{}, fmt.Errorf("goalkeeper %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Goalkeeper{}, fmt.Errorf("failed to query goalkeeper %q: %w", id, err)
	}
	return g, nil
}

func (s *SQLiteStore) Goalkeepers(ctx context.Context) ([]model.Goalkeeper, error) {
	defer observe("goalkeepers", time.Now())
	rows, err := s.db.QueryContext(ctx, `SELECT `+goalkeeperColumns+` FROM goalkeepers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goalkeepers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Goalkeeper
	for rows.Next() {
		g, err := scanGoalkeeper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goalkeeper: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Opponent(ctx context.Context, id string) (model.Opponent, error) {
	defer observe("opponent", time.Now())
	row := s.db.QueryRowContext(ctx, `SELECT `+opponentColumns+` FROM opponents WHERE id = ?`, id)
	o, err := scanOpponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Opponent{}, fmt.Errorf("opponent %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Opponent{}, fmt.Errorf("failed to query opponent %q: %w", id, err)
	}
	return o, nil
}

func (s *SQLiteStore) Opponents(ctx context.Context) ([]model.Opponent, error) {
	defer observe("opponents", time.Now())
	rows, err := s.db.QueryContext(ctx, `SELECT `+opponentColumns+` FROM opponents ORDER BY ranking, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query opponents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Opponent
	for rows.Next() {
		o, err := scanOpponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opponent: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
