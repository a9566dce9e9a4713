package domain

import (
	"encoding/json"
	"sort"
)

// Category is one of the canonical menu categories understood by the assistant
type Category string

const (
	CategoryCoffee Category = "coffee"
	CategoryTea    Category = "tea"
	CategorySweet  Category = "sweet"
	CategoryCold   Category = "cold"

	// CategoryOther is the catch-all for catalog categories that map to nothing.
	// It never satisfies a category filter.
	CategoryOther Category = "other"
)

// AllCategories returns the four real categories
func AllCategories() []Category {
	return []Category{CategoryCoffee, CategoryTea, CategoryCold, CategorySweet}
}

// CategorySet is an unordered set of categories
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories
func NewCategorySet(categories ...Category) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of categories in the set
func (s CategorySet) Len() int {
	return len(s)
}

// Sorted returns the categories in lexical order
func (s CategorySet) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// LabelSet is an unordered set of lower-cased labels
type LabelSet map[string]struct{}

// NewLabelSet builds a set from the given labels, normalizing each one
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s.add(l)
	}
	return s
}

func (s LabelSet) add(label string) {
	if n := NormalizeLabel(label); n != "" {
		s[n] = struct{}{}
	}
}

// Has reports whether label is in the set (case-insensitive)
func (s LabelSet) Has(label string) bool {
	_, ok := s[NormalizeLabel(label)]
	return ok
}

// Len returns the number of labels in the set
func (s LabelSet) Len() int {
	return len(s)
}

// Sorted returns the labels in lexical order
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array
func (s LabelSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// IntentRecord is the structured interpretation of a customer utterance.
// It is created per request and must not be modified after construction.
type IntentRecord struct {
	Categories    CategorySet `json:"categories"`
	ExcludeLabels LabelSet    `json:"excludeLabels"`
	Vegan         bool        `json:"vegan"`
	LowCalorie    bool        `json:"lowCalorie"`
	SugarFree     bool        `json:"sugarFree"`
}

// DefaultIntent returns the intent for a request that expressed nothing:
// every category, no exclusions, no dietary flags
func DefaultIntent() IntentRecord {
	return IntentRecord{
		Categories:    NewCategorySet(AllCategories()...),
		ExcludeLabels: NewLabelSet(),
	}
}
