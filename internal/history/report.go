// Package history contains reporting over recorded decisions.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/delvin02/decision-maker/internal/model"
	"github.com/delvin02/decision-maker/internal/store"
)

// Report bundles everything the history views need.
type Report struct {
	Records    []model.DecisionRecord
	Aggregates []model.LabelAggregate
}

// BuildReport loads filtered records and per-label aggregates from the store.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	records, err := st.ListDecisions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	aggs, err := st.AggregateLabels(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{Records: records, Aggregates: aggs}, nil
}

// ObservedShare returns the empirical selection frequency for one label.
func ObservedShare(agg model.LabelAggregate, totalDecisions int) float64 {
	if totalDecisions == 0 {
		return 0
	}
	return float64(agg.Count) / float64(totalDecisions)
}

// ExpectedShare estimates the weight-implied selection probability for one
// label from the weights recorded at decision time.
func ExpectedShare(agg model.LabelAggregate) float64 {
	if agg.TotalWeight == 0 {
		return 0
	}
	return float64(agg.WeightSum) / float64(agg.TotalWeight)
}

// CountPerDay buckets records into consecutive calendar days, oldest first.
// Days with no decisions between the first and last record count as zero.
func CountPerDay(records []model.DecisionRecord) []float64 {
	if len(records) == 0 {
		return nil
	}
	counts := map[string]int{}
	var days []time.Time
	for _, rec := range records {
		day := rec.DecidedAt.Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		if _, ok := counts[key]; !ok {
			days = append(days, day)
		}
		counts[key]++
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first := days[0]
	last := days[len(days)-1]
	var out []float64
	for day := first; !day.After(last); day = day.Add(24 * time.Hour) {
		out = append(out, float64(counts[day.Format("2006-01-02")]))
	}
	return out
}
