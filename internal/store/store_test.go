package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/delvin02/decision-maker/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "decide.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertWheelDecision(t *testing.T, st *Store, at time.Time, label string, weight, total int) {
	t.Helper()
	rec := model.DecisionRecord{
		DecidedAt:   at,
		Mode:        model.ModeWheel,
		Label:       label,
		Category:    model.CategoryPlay,
		Weight:      weight,
		TotalWeight: total,
		Eligible:    3,
		Rotation:    1987.5,
	}
	if _, err := st.InsertDecision(context.Background(), rec); err != nil {
		t.Fatalf("insert decision: %v", err)
	}
}

func TestInsertAndListDecisions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	insertWheelDecision(t, st, base, "picnic", 3, 10)
	insertWheelDecision(t, st, base.Add(time.Hour), "report", 7, 10)
	if _, err := st.InsertDecision(ctx, model.DecisionRecord{
		DecidedAt: base.Add(2 * time.Hour),
		Mode:      model.ModeFlip,
		Label:     "Yes, you should nap!",
	}); err != nil {
		t.Fatalf("insert flip: %v", err)
	}

	records, err := st.ListDecisions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Label != "picnic" || records[2].Mode != model.ModeFlip {
		t.Fatalf("unexpected order: %+v", records)
	}
	if !records[0].DecidedAt.Equal(base) {
		t.Fatalf("timestamp roundtrip failed: %v", records[0].DecidedAt)
	}
	if records[0].Rotation != 1987.5 {
		t.Fatalf("rotation roundtrip failed: %f", records[0].Rotation)
	}
}

func TestListDecisionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		insertWheelDecision(t, st, base.Add(time.Duration(i)*time.Hour), "picnic", 3, 10)
	}

	wheelOnly, err := st.ListDecisions(ctx, model.HistoryConfig{Mode: model.ModeFlip})
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(wheelOnly) != 0 {
		t.Fatalf("expected no flip records, got %d", len(wheelOnly))
	}

	since := base.Add(90 * time.Minute)
	recent, err := st.ListDecisions(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records since %v, got %d", since, len(recent))
	}

	last, err := st.ListDecisions(ctx, model.HistoryConfig{Last: 3})
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(last) != 3 {
		t.Fatalf("expected last 3 records, got %d", len(last))
	}
	if !last[len(last)-1].DecidedAt.Equal(base.Add(3 * time.Hour)) {
		t.Fatalf("last filter must keep the newest records")
	}
}

func TestAggregateLabels(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	insertWheelDecision(t, st, base, "picnic", 3, 10)
	insertWheelDecision(t, st, base.Add(time.Hour), "picnic", 3, 10)
	insertWheelDecision(t, st, base.Add(2*time.Hour), "report", 7, 10)
	if _, err := st.InsertDecision(ctx, model.DecisionRecord{
		DecidedAt: base.Add(3 * time.Hour),
		Mode:      model.ModeFlip,
		Label:     "No, you shouldn't nap.",
	}); err != nil {
		t.Fatalf("insert flip: %v", err)
	}

	aggs, err := st.AggregateLabels(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("aggregate labels: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 wheel labels, got %d", len(aggs))
	}
	if aggs[0].Label != "picnic" || aggs[0].Count != 2 {
		t.Fatalf("unexpected top aggregate: %+v", aggs[0])
	}
	if aggs[0].WeightSum != 6 || aggs[0].TotalWeight != 20 {
		t.Fatalf("unexpected weight sums: %+v", aggs[0])
	}
	if !aggs[0].LastDecidedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected last decided at: %v", aggs[0].LastDecidedAt)
	}
}
