package domain

import "strings"

// Product represents a menu item as stored in the catalog
type Product struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Labels      []string `json:"labels" yaml:"labels"`
}

// HasLabel reports whether the product carries the label, ignoring case and
// surrounding whitespace
func (p Product) HasLabel(label string) bool {
	want := NormalizeLabel(label)
	for _, l := range p.Labels {
		if NormalizeLabel(l) == want {
			return true
		}
	}
	return false
}

// NormalizeLabel lower-cases and trims a label for comparison
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// AssistantRequest represents a free-text request to the café assistant
type AssistantRequest struct {
	Message string `json:"message"`
}

// AssistantResponse carries the interpreted intent and the matching products
type AssistantResponse struct {
	Intent          IntentRecord `json:"intent"`
	Recommendations []Product    `json:"recommendations"`
}

// ProductInput is the admin payload for creating or replacing a product
type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"gte=0"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

// Product converts the input into a catalog product with the given id
func (in ProductInput) Product(id int64) Product {
	labels := make([]string, 0, len(in.Labels))
	for _, l := range in.Labels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Labels:      labels,
	}
}

// LabelRequest registers a label name
type LabelRequest struct {
	Name string `json:"name" binding:"required"`
}
