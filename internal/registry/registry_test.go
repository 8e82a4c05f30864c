package registry

import (
	"errors"
	"testing"

	"github.com/delvin02/decision-maker/internal/model"
)

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		weight   int
		category model.Category
	}{
		{name: "empty label", label: "", weight: 5, category: model.CategoryWork},
		{name: "whitespace label", label: "   ", weight: 5, category: model.CategoryWork},
		{name: "zero weight", label: "go out", weight: 0, category: model.CategoryWork},
		{name: "negative weight", label: "go out", weight: -3, category: model.CategoryWork},
		{name: "weight above max", label: "go out", weight: 1001, category: model.CategoryWork},
		{name: "unknown category", label: "go out", weight: 5, category: model.Category("misc")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := New()
			if _, err := reg.Add(tc.label, tc.weight, tc.category); !errors.Is(err, model.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if reg.Count() != 0 {
				t.Fatalf("rejected add must not grow the registry, count=%d", reg.Count())
			}
		})
	}
}

func TestAddAppendsAndTrims(t *testing.T) {
	reg := New()
	item, err := reg.Add("  go out  ", 5, model.CategoryWork)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Label != "go out" {
		t.Fatalf("expected trimmed label, got %q", item.Label)
	}
	if reg.Count() != 1 {
		t.Fatalf("expected count 1, got %d", reg.Count())
	}
	if reg.TotalWeight() != 5 {
		t.Fatalf("expected total weight 5, got %d", reg.TotalWeight())
	}
}

func TestAddAssignsUniqueIncreasingIDs(t *testing.T) {
	reg := New()
	var prev int64
	for i := 0; i < 5; i++ {
		item, err := reg.Add("option", 1, model.CategoryPlay)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if item.ID <= prev {
			t.Fatalf("expected increasing IDs, got %d after %d", item.ID, prev)
		}
		prev = item.ID
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	reg := New()
	if _, err := reg.Add("go out", 5, model.CategoryWork); err != nil {
		t.Fatalf("add: %v", err)
	}
	reg.Remove(999)
	if reg.Count() != 1 {
		t.Fatalf("expected count 1 after removing unknown id, got %d", reg.Count())
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	reg := New()
	first, _ := reg.Add("first", 1, model.CategoryWork)
	second, _ := reg.Add("second", 2, model.CategoryPlay)
	third, _ := reg.Add("third", 3, model.CategoryWork)

	reg.Remove(second.ID)
	items := reg.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != third.ID {
		t.Fatalf("unexpected order after removal: %+v", items)
	}
	if reg.TotalWeight() != 4 {
		t.Fatalf("expected total weight 4, got %d", reg.TotalWeight())
	}
}

func TestEligibleExcludesCategory(t *testing.T) {
	reg := New()
	reg.Add("report", 2, model.CategoryWork)
	reg.Add("picnic", 3, model.CategoryPlay)
	reg.Add("invoice", 4, model.CategoryWork)

	all := reg.Eligible("")
	if len(all) != 3 {
		t.Fatalf("expected 3 eligible items without filter, got %d", len(all))
	}
	filtered := reg.Eligible(model.CategoryWork)
	if len(filtered) != 1 || filtered[0].Label != "picnic" {
		t.Fatalf("unexpected filtered set: %+v", filtered)
	}
	if reg.CountByCategory(model.CategoryWork) != 2 {
		t.Fatalf("expected 2 work items, got %d", reg.CountByCategory(model.CategoryWork))
	}
}
