// Package registry maintains the ordered collection of choice items.
package registry

import (
	"fmt"
	"strings"

	"github.com/delvin02/decision-maker/internal/model"
)

// Registry is an ordered, mutable collection of weighted choice items.
// Insertion order is preserved; IDs are unique within one session.
// It is owned and mutated by a single goroutine (the UI event loop).
type Registry struct {
	items  []model.ChoiceItem
	nextID int64
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{nextID: 1}
}

// Add validates and appends a new item, returning it with a fresh ID.
func (r *Registry) Add(label string, weight int, category model.Category) (model.ChoiceItem, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.ChoiceItem{}, fmt.Errorf("%w: label must not be empty", model.ErrValidation)
	}
	if weight < model.MinWeight || weight > model.MaxWeight {
		return model.ChoiceItem{}, fmt.Errorf("%w: weight must be between %d and %d", model.ErrValidation, model.MinWeight, model.MaxWeight)
	}
	if !category.Valid() {
		return model.ChoiceItem{}, fmt.Errorf("%w: unknown category %q", model.ErrValidation, category)
	}
	item := model.ChoiceItem{
		ID:       r.nextID,
		Label:    label,
		Weight:   weight,
		Category: category,
	}
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// Remove deletes the item with the given ID. Removing an unknown ID is a no-op;
// the relative order of the remaining items is preserved.
func (r *Registry) Remove(id int64) {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// Count returns the number of items.
func (r *Registry) Count() int {
	return len(r.items)
}

// TotalWeight sums the weights of all items.
func (r *Registry) TotalWeight() int {
	total := 0
	for _, item := range r.items {
		total += item.Weight
	}
	return total
}

// CountByCategory returns the number of items tagged with the given category.
func (r *Registry) CountByCategory(category model.Category) int {
	count := 0
	for _, item := range r.items {
		if item.Category == category {
			count++
		}
	}
	return count
}

// Items returns a snapshot of all items in insertion order.
func (r *Registry) Items() []model.ChoiceItem {
	out := make([]model.ChoiceItem, len(r.items))
	copy(out, r.items)
	return out
}

// Eligible returns a snapshot of the items left after excluding one category.
// An empty exclude keeps every item.
func (r *Registry) Eligible(exclude model.Category) []model.ChoiceItem {
	out := make([]model.ChoiceItem, 0, len(r.items))
	for _, item := range r.items {
		if exclude != "" && item.Category == exclude {
			continue
		}
		out = append(out, item)
	}
	return out
}
