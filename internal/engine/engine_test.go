package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/delvin02/decision-maker/internal/model"
)

func wheelItems() []model.ChoiceItem {
	return []model.ChoiceItem{
		{ID: 1, Label: "inbox zero", Weight: 1, Category: model.CategoryWork},
		{ID: 2, Label: "board games", Weight: 3, Category: model.CategoryPlay},
		{ID: 3, Label: "write report", Weight: 6, Category: model.CategoryWork},
	}
}

func TestDecideRequiresBothCategories(t *testing.T) {
	eng := NewSeeded(1)

	if _, err := eng.Decide(nil, ""); !errors.Is(err, model.ErrInsufficientItems) {
		t.Fatalf("expected insufficient items on empty registry, got %v", err)
	}

	onlyWork := []model.ChoiceItem{
		{ID: 1, Label: "report", Weight: 5, Category: model.CategoryWork},
	}
	if _, err := eng.Decide(onlyWork, ""); !errors.Is(err, model.ErrInsufficientItems) {
		t.Fatalf("expected insufficient items with a missing category, got %v", err)
	}
}

func TestDecideWithFairnessFilter(t *testing.T) {
	eng := NewSeeded(1)

	// Every item in the excluded category: fails before the filter even
	// applies, with the same error kind either way.
	allExcluded := []model.ChoiceItem{
		{ID: 1, Label: "report", Weight: 5, Category: model.CategoryWork},
		{ID: 2, Label: "invoice", Weight: 5, Category: model.CategoryWork},
	}
	if _, err := eng.Decide(allExcluded, model.CategoryWork); !errors.Is(err, model.ErrInsufficientItems) {
		t.Fatalf("expected insufficient items, got %v", err)
	}

	items := []model.ChoiceItem{
		{ID: 1, Label: "report", Weight: 5, Category: model.CategoryWork},
		{ID: 2, Label: "picnic", Weight: 5, Category: model.CategoryPlay},
	}
	result, err := eng.Decide(items, model.CategoryWork)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if result.Item.Category == model.CategoryWork {
		t.Fatalf("excluded category won: %+v", result.Item)
	}
	if result.Segment.Start != 0 || result.Segment.End != 360 {
		t.Fatalf("single eligible item must own the whole wheel, got %+v", result.Segment)
	}
}

func TestSegmentsTileWheelExactly(t *testing.T) {
	items := wheelItems()
	segments := Segments(items)
	if len(segments) != len(items) {
		t.Fatalf("expected %d segments, got %d", len(items), len(segments))
	}
	if segments[0].Start != 0 {
		t.Fatalf("first segment must start at 0, got %f", segments[0].Start)
	}
	if segments[len(segments)-1].End != 360 {
		t.Fatalf("last segment must end at 360, got %f", segments[len(segments)-1].End)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Start != segments[i-1].End {
			t.Fatalf("segment %d starts at %f but previous ends at %f", i, segments[i].Start, segments[i-1].End)
		}
	}
	// Widths proportional to weight share of the 1+3+6 total.
	wantWidths := []float64{36, 108, 216}
	for i, seg := range segments {
		if math.Abs(seg.Width()-wantWidths[i]) > 1e-9 {
			t.Fatalf("segment %d width %f, want %f", i, seg.Width(), wantWidths[i])
		}
	}
}

func TestDecideMatchesWeightShares(t *testing.T) {
	eng := NewSeeded(42)
	items := wheelItems()
	const trials = 20000

	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		result, err := eng.Decide(items, "")
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		counts[result.Item.ID]++
	}

	total := 0
	for _, item := range items {
		total += item.Weight
	}
	for _, item := range items {
		want := float64(item.Weight) / float64(total)
		got := float64(counts[item.ID]) / float64(trials)
		if math.Abs(got-want) > 0.02 {
			t.Fatalf("item %q frequency %f, want %f ± 0.02", item.Label, got, want)
		}
	}
}

func TestDecideReturnsWinnerSegment(t *testing.T) {
	eng := NewSeeded(7)
	items := wheelItems()
	segments := Segments(items)
	for i := 0; i < 100; i++ {
		result, err := eng.Decide(items, "")
		if err != nil {
			t.Fatalf("decide: %v", err)
		}
		found := false
		for j, item := range items {
			if item.ID == result.Item.ID {
				if result.Segment != segments[j] {
					t.Fatalf("winner %q got segment %+v, want %+v", item.Label, result.Segment, segments[j])
				}
				found = true
			}
		}
		if !found {
			t.Fatalf("winner %v is not a registry item", result.Item)
		}
	}
}

func TestTargetRotation(t *testing.T) {
	seg := model.Segment{Start: 90, End: 180}
	got := TargetRotation(seg, 5)
	want := (360 - 135.0) + 5*360
	if got != want {
		t.Fatalf("target rotation %f, want %f", got, want)
	}
	// Landing angle is invariant under the extra full turns.
	if math.Mod(TargetRotation(seg, 9), 360) != math.Mod(got, 360) {
		t.Fatalf("full spins changed the landing angle")
	}
}
