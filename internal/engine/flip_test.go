package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/delvin02/decision-maker/internal/model"
)

func TestFlipRejectsEmptyTopic(t *testing.T) {
	eng := NewSeeded(1)
	for _, topic := range []string{"", "   ", "\t\n"} {
		if _, err := eng.Flip(topic); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("topic %q: expected validation error, got %v", topic, err)
		}
	}
}

func TestFlipReturnsExactlyOneVerdict(t *testing.T) {
	eng := NewSeeded(42)
	sawYes := false
	sawNo := false
	for i := 0; i < 200; i++ {
		verdict, err := eng.Flip("eat pizza")
		if err != nil {
			t.Fatalf("flip: %v", err)
		}
		normalized := strings.ReplaceAll(strings.ToLower(verdict), "'", "")
		negative := strings.Contains(normalized, "shouldnt eat pizza")
		affirmative := !negative && strings.Contains(normalized, "should eat pizza")
		if affirmative == negative {
			t.Fatalf("verdict %q must contain exactly one outcome", verdict)
		}
		if affirmative {
			sawYes = true
		} else {
			sawNo = true
		}
	}
	if !sawYes || !sawNo {
		t.Fatalf("expected both outcomes over 200 flips, yes=%v no=%v", sawYes, sawNo)
	}
}

func TestFlipIsRoughlyUniform(t *testing.T) {
	eng := NewSeeded(7)
	const trials = 10000
	yes := 0
	for i := 0; i < trials; i++ {
		verdict, err := eng.Flip("go outside")
		if err != nil {
			t.Fatalf("flip: %v", err)
		}
		if strings.HasPrefix(verdict, "Yes") {
			yes++
		}
	}
	share := float64(yes) / float64(trials)
	if share < 0.47 || share > 0.53 {
		t.Fatalf("yes share %f, want ~0.5", share)
	}
}
