package domain

import (
	"sort"
	"strings"
)

// Item is the canonical, cacheable search result (an event or venue).
// Once stored it never changes: later writes with the same ID are no-ops.
type Item struct {
	ID         string
	Name       string
	Rating     float64
	Address    string
	ImageURL   string
	URL        string
	Distance   float64
	Categories Categories
}

// Categories is a set of category labels.
type Categories map[string]struct{}

func NewCategories(labels ...string) Categories {
	c := make(Categories, len(labels))
	for _, l := range labels {
		c.Add(l)
	}
	return c
}

// Add stores label with surrounding whitespace trimmed and ignores blank labels.
func (c Categories) Add(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	c[label] = struct{}{}
}

func (c Categories) Has(label string) bool {
	_, ok := c[label]
	return ok
}

// Sorted returns the labels in a stable order for output and storage.
func (c Categories) Sorted() []string {
	out := make([]string, 0, len(c))
	for l := range c {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// ItemBuilder assembles an Item field by field; unset fields keep their zero defaults.
type ItemBuilder struct {
	item Item
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{item: Item{Categories: Categories{}}}
}

func (b *ItemBuilder) ID(id string) *ItemBuilder {
	b.item.ID = strings.TrimSpace(id)
	return b
}

func (b *ItemBuilder) Name(v string) *ItemBuilder      { b.item.Name = v; return b }
func (b *ItemBuilder) Rating(v float64) *ItemBuilder   { b.item.Rating = v; return b }
func (b *ItemBuilder) Address(v string) *ItemBuilder   { b.item.Address = v; return b }
func (b *ItemBuilder) ImageURL(v string) *ItemBuilder  { b.item.ImageURL = v; return b }
func (b *ItemBuilder) URL(v string) *ItemBuilder       { b.item.URL = v; return b }
func (b *ItemBuilder) Distance(v float64) *ItemBuilder { b.item.Distance = v; return b }

func (b *ItemBuilder) Categories(labels ...string) *ItemBuilder {
	for _, l := range labels {
		b.item.Categories.Add(l)
	}
	return b
}

// Build validates and returns the item. ID is the only required field.
func (b *ItemBuilder) Build() (*Item, error) {
	if err := ValidateItem(&b.item); err != nil {
		return nil, err
	}
	it := b.item
	it.Categories = NewCategories(b.item.Categories.Sorted()...)
	return &it, nil
}

func ValidateItem(it *Item) error {
	if it == nil {
		return ErrValidation("item is required")
	}
	if strings.TrimSpace(it.ID) == "" {
		return ErrValidationMeta("invalid item", map[string]string{
			"item_id": "is required",
		})
	}
	return nil
}
