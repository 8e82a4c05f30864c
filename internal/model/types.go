// Package model defines shared data structures.
package model

import "time"

// Category tags a choice item with one of the two fixed groups.
type Category string

// The closed set of categories.
const (
	CategoryWork Category = "work"
	CategoryPlay Category = "play"
)

// Categories lists all valid categories in display order.
var Categories = []Category{CategoryWork, CategoryPlay}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Weight bounds for choice items.
const (
	MinWeight = 1
	MaxWeight = 1000
)

// ChoiceItem is one weighted option on the wheel.
type ChoiceItem struct {
	ID       int64
	Label    string
	Weight   int
	Category Category
}

// Segment is the angular arc assigned to one eligible item, degrees in [0, 360).
type Segment struct {
	Start float64
	End   float64
}

// Width returns the angular width of the segment in degrees.
func (s Segment) Width() float64 {
	return s.End - s.Start
}

// Center returns the angular midpoint of the segment in degrees.
func (s Segment) Center() float64 {
	return (s.Start + s.End) / 2
}

// SelectionResult pairs the winning item with its arc on the wheel.
type SelectionResult struct {
	Item    ChoiceItem
	Segment Segment
}

// Config defines wheel settings.
type Config struct {
	DefaultWeight  int
	SpinDuration   time.Duration
	NoticeDuration time.Duration
	FullSpins      int
	Fairness       bool
	ExcludeGroup   Category
	PaletteSize    int
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Mode  string
	Since *time.Time
	Last  int
}

// DecisionRecord captures one completed decision.
type DecisionRecord struct {
	ID          int64
	DecidedAt   time.Time
	Mode        string
	Label       string
	Category    Category
	Weight      int
	TotalWeight int
	Eligible    int
	Rotation    float64
}

// Decision modes stored in history.
const (
	ModeWheel = "wheel"
	ModeFlip  = "flip"
)

// LabelAggregate aggregates decisions per label across records.
type LabelAggregate struct {
	Label         string
	Count         int
	WeightSum     int
	TotalWeight   int
	LastDecidedAt time.Time
}
