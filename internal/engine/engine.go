// Package engine implements weighted selection and wheel geometry.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/delvin02/decision-maker/internal/model"
)

// DefaultFullSpins is the number of extra full turns added to every spin.
// Purely visual: any multiple of 360 degrees lands the same segment.
const DefaultFullSpins = 5

// Engine picks weighted items and computes their wheel segments.
type Engine struct {
	rnd *rand.Rand
}

// New returns an Engine seeded with the current time.
func New() *Engine {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an Engine with a fixed seed for reproducible draws.
func NewSeeded(seed int64) *Engine {
	return &Engine{rnd: rand.New(rand.NewSource(seed))}
}

// Decide picks one eligible item with probability proportional to its weight
// and returns it together with its arc on the wheel.
//
// items is the full registry snapshot in insertion order. A decision requires
// at least one item in every category regardless of the exclude filter; the
// filter is applied afterwards to form the eligible set.
func (e *Engine) Decide(items []model.ChoiceItem, exclude model.Category) (model.SelectionResult, error) {
	for _, category := range model.Categories {
		if countCategory(items, category) == 0 {
			return model.SelectionResult{}, fmt.Errorf("%w: add at least one %q item first", model.ErrInsufficientItems, category)
		}
	}

	eligible := filterItems(items, exclude)
	if len(eligible) == 0 {
		return model.SelectionResult{}, fmt.Errorf("%w: the fairness filter excluded every item", model.ErrInsufficientItems)
	}

	segments := Segments(eligible)
	total := totalWeight(eligible)

	r := e.rnd.Float64() * float64(total)
	acc := 0.0
	winner := len(eligible) - 1
	for i, item := range eligible {
		acc += float64(item.Weight)
		if r < acc {
			winner = i
			break
		}
	}

	return model.SelectionResult{
		Item:    eligible[winner],
		Segment: segments[winner],
	}, nil
}

// Segments lays the eligible items out on the wheel in order. The arcs tile
// [0, 360) exactly: each item's end is the next item's start and the widths
// are proportional to weight share.
func Segments(eligible []model.ChoiceItem) []model.Segment {
	total := float64(totalWeight(eligible))
	segments := make([]model.Segment, len(eligible))
	cum := 0
	for i, item := range eligible {
		start := float64(cum) / total * 360
		cum += item.Weight
		end := float64(cum) / total * 360
		segments[i] = model.Segment{Start: start, End: end}
	}
	return segments
}

// TargetRotation converts a winning segment into the wheel rotation, in
// degrees, that parks the segment's center under the fixed top pointer.
func TargetRotation(seg model.Segment, fullSpins int) float64 {
	return (360 - seg.Center()) + float64(fullSpins)*360
}

func countCategory(items []model.ChoiceItem, category model.Category) int {
	count := 0
	for _, item := range items {
		if item.Category == category {
			count++
		}
	}
	return count
}

func filterItems(items []model.ChoiceItem, exclude model.Category) []model.ChoiceItem {
	if exclude == "" {
		return items
	}
	out := make([]model.ChoiceItem, 0, len(items))
	for _, item := range items {
		if item.Category == exclude {
			continue
		}
		out = append(out, item)
	}
	return out
}

func totalWeight(items []model.ChoiceItem) int {
	total := 0
	for _, item := range items {
		total += item.Weight
	}
	return total
}
