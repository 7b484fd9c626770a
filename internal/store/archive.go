package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/statistics"
)

// ErrRunNotFound is returned when the archive holds no run with the given ID.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                   TEXT PRIMARY KEY,
	created_at           TEXT NOT NULL,
	players_count        INTEGER NOT NULL,
	initial_player_coin  INTEGER NOT NULL,
	coin_put_amount      INTEGER NOT NULL,
	initial_pot_coin     INTEGER NOT NULL,
	allow_zero_coin_draw INTEGER NOT NULL,
	repetition           INTEGER NOT NULL,
	verbose_output       INTEGER NOT NULL,
	seed                 INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	metric TEXT NOT NULL,
	value  INTEGER NOT NULL,
	count  INTEGER NOT NULL,
	PRIMARY KEY (run_id, metric, value)
);
`

// createdAtLayout keeps fractional seconds fixed-width so the text column
// sorts chronologically.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunSummary is one row of the archive listing
type RunSummary struct {
	ID         string
	CreatedAt  time.Time
	Config     config.Config
	MeanTurns  float64
	MeanCycles float64
}

// Archive keeps every recorded run in a SQLite database
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the archive at path.
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record stores agg and its histograms in one transaction.
func (a *Archive) Record(ctx context.Context, agg *statistics.Aggregate) error {
	if err := agg.Validate(); err != nil {
		return fmt.Errorf("refusing to archive invalid aggregate: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	cfg := agg.Config
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, players_count, initial_player_coin, coin_put_amount,
			initial_pot_coin, allow_zero_coin_draw, repetition, verbose_output, seed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		agg.ID,
		agg.CreatedAt.UTC().Format(createdAtLayout),
		cfg.Player.PlayersCount,
		cfg.Player.InitialPlayerCoin,
		cfg.Player.CoinPutAmount,
		cfg.Pot.InitialPotCoin,
		cfg.Pot.AllowZeroCoinDraw,
		cfg.Simulation.Repetition,
		cfg.Simulation.VerboseOutput,
		cfg.Simulation.Seed,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", agg.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO outcomes (run_id, metric, value, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, metric := range statistics.Metrics {
		h, _ := agg.Histogram(metric)
		for _, value := range h.Keys() {
			if _, err := stmt.ExecContext(ctx, agg.ID, string(metric), value, h[value]); err != nil {
				return fmt.Errorf("insert %s outcome %d: %w", metric, value, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", agg.ID, err)
	}
	return nil
}

const runColumns = `id, created_at, players_count, initial_player_coin, coin_put_amount,
	initial_pot_coin, allow_zero_coin_draw, repetition, verbose_output, seed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (string, time.Time, config.Config, error) {
	var (
		id, createdAt string
		cfg           config.Config
	)
	err := row.Scan(&id, &createdAt,
		&cfg.Player.PlayersCount,
		&cfg.Player.InitialPlayerCoin,
		&cfg.Player.CoinPutAmount,
		&cfg.Pot.InitialPotCoin,
		&cfg.Pot.AllowZeroCoinDraw,
		&cfg.Simulation.Repetition,
		&cfg.Simulation.VerboseOutput,
		&cfg.Simulation.Seed,
	)
	if err != nil {
		return "", time.Time{}, config.Config{}, err
	}
	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return "", time.Time{}, config.Config{}, fmt.Errorf("parse created_at of run %s: %w", id, err)
	}
	return id, ts, cfg, nil
}

// Get loads a recorded run.
func (a *Archive) Get(ctx context.Context, id string) (*statistics.Aggregate, error) {
	row := a.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	runID, createdAt, cfg, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	agg := statistics.NewAggregate(runID, createdAt, cfg)
	rows, err := a.db.QueryContext(ctx, `SELECT metric, value, count FROM outcomes WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load outcomes of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			metric       string
			value, count int
		)
		if err := rows.Scan(&metric, &value, &count); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		h, err := agg.Histogram(statistics.Metric(metric))
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", id, err)
		}
		h[value] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return agg, nil
}

// Latest loads the most recently created run.
func (a *Archive) Latest(ctx context.Context) (*statistics.Aggregate, error) {
	var id string
	err := a.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: archive is empty", ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find latest run: %w", err)
	}
	return a.Get(ctx, id)
}

// List returns every run, newest first, with mean turns and cycles.
func (a *Archive) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	var summaries []RunSummary
	for rows.Next() {
		id, createdAt, cfg, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, RunSummary{ID: id, CreatedAt: createdAt, Config: cfg})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for i := range summaries {
		means, err := a.means(ctx, summaries[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].MeanTurns = means[statistics.MetricTurns]
		summaries[i].MeanCycles = means[statistics.MetricCycles]
	}
	return summaries, nil
}

func (a *Archive) means(ctx context.Context, id string) (map[statistics.Metric]float64, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT metric, CAST(SUM(value * count) AS REAL) / SUM(count)
		FROM outcomes WHERE run_id = ? GROUP BY metric`, id)
	if err != nil {
		return nil, fmt.Errorf("mean outcomes of run %s: %w", id, err)
	}
	defer rows.Close()

	means := make(map[statistics.Metric]float64)
	for rows.Next() {
		var (
			metric string
			mean   float64
		)
		if err := rows.Scan(&metric, &mean); err != nil {
			return nil, fmt.Errorf("scan mean: %w", err)
		}
		means[statistics.Metric(metric)] = mean
	}
	return means, rows.Err()
}
