// Package store handles SQLite persistence of decision history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/delvin02/decision-maker/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for decision records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			id INTEGER PRIMARY KEY,
			decided_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			label TEXT NOT NULL,
			category TEXT NOT NULL,
			weight INTEGER NOT NULL,
			total_weight INTEGER NOT NULL,
			eligible INTEGER NOT NULL,
			rotation REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_decided_at ON decisions(decided_at);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_label ON decisions(label);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertDecision stores one completed decision and returns its row ID.
func (s *Store) InsertDecision(ctx context.Context, rec model.DecisionRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions (decided_at, mode, label, category, weight, total_weight, eligible, rotation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DecidedAt.Format(time.RFC3339Nano),
		rec.Mode,
		rec.Label,
		string(rec.Category),
		rec.Weight,
		rec.TotalWeight,
		rec.Eligible,
		rec.Rotation,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListDecisions returns decision records filtered by the history config,
// oldest first.
func (s *Store) ListDecisions(ctx context.Context, cfg model.HistoryConfig) ([]model.DecisionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "decided_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, decided_at, mode, label, category, weight, total_weight, eligible, rotation
		FROM decisions
		WHERE %s
		ORDER BY decided_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.DecisionRecord
	for rows.Next() {
		var rec model.DecisionRecord
		var decidedAt, category string
		if err := rows.Scan(&rec.ID, &decidedAt, &rec.Mode, &rec.Label, &category, &rec.Weight, &rec.TotalWeight, &rec.Eligible, &rec.Rotation); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, decidedAt)
		if err != nil {
			return nil, err
		}
		rec.DecidedAt = parsed
		rec.Category = model.Category(category)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	return records, nil
}

// AggregateLabels groups wheel decisions per label across the filtered records.
func (s *Store) AggregateLabels(ctx context.Context, cfg model.HistoryConfig) ([]model.LabelAggregate, error) {
	clauses := []string{"mode = ?"}
	args := []any{model.ModeWheel}
	if cfg.Since != nil {
		clauses = append(clauses, "decided_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT label, COUNT(*) AS count, SUM(weight) AS weight_sum,
		SUM(total_weight) AS total_weight, MAX(decided_at) AS last_decided_at
		FROM decisions
		WHERE %s
		GROUP BY label
		ORDER BY count DESC, label ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var aggs []model.LabelAggregate
	for rows.Next() {
		var agg model.LabelAggregate
		var lastDecidedAt string
		if err := rows.Scan(&agg.Label, &agg.Count, &agg.WeightSum, &agg.TotalWeight, &lastDecidedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastDecidedAt)
		if err != nil {
			return nil, err
		}
		agg.LastDecidedAt = parsed
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return aggs, nil
}
