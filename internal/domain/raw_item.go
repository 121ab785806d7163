package domain

import "strings"

// RawItem is one event record as returned by the events provider.
// Every field is optional; nil means the provider omitted it or sent null.
type RawItem struct {
	ID              *string             `json:"id"`
	Name            *string             `json:"name"`
	URL             *string             `json:"url"`
	Rating          *float64            `json:"rating"`
	Distance        *float64            `json:"distance"`
	Images          []RawImage          `json:"images"`
	Classifications []RawClassification `json:"classifications"`
	Embedded        *RawEmbedded        `json:"_embedded"`
}

type RawImage struct {
	URL *string `json:"url"`
}

type RawClassification struct {
	Segment *struct {
		Name *string `json:"name"`
	} `json:"segment"`
}

type RawEmbedded struct {
	Venues []RawVenue `json:"venues"`
}

type RawVenue struct {
	Address *struct {
		Line1 *string `json:"line1"`
		Line2 *string `json:"line2"`
		Line3 *string `json:"line3"`
	} `json:"address"`
	City *struct {
		Name *string `json:"name"`
	} `json:"city"`
}

// ItemFromRaw maps a provider record into the canonical shape.
// Records without an id are rejected so that no partial item is ever emitted.
func ItemFromRaw(r RawItem) (*Item, error) {
	b := NewItemBuilder().
		ID(deref(r.ID)).
		Name(deref(r.Name)).
		URL(deref(r.URL)).
		Address(r.address()).
		ImageURL(r.imageURL()).
		Categories(r.categories()...)

	if r.Rating != nil {
		b.Rating(*r.Rating)
	}
	if r.Distance != nil {
		b.Distance(*r.Distance)
	}
	return b.Build()
}

// address returns the first venue with a non-empty "line1 line2 line3 city" rendering.
func (r RawItem) address() string {
	if r.Embedded == nil {
		return ""
	}
	for _, v := range r.Embedded.Venues {
		var parts []string
		if v.Address != nil {
			for _, p := range []*string{v.Address.Line1, v.Address.Line2, v.Address.Line3} {
				if p != nil {
					parts = append(parts, *p)
				}
			}
		}
		if v.City != nil && v.City.Name != nil {
			parts = append(parts, *v.City.Name)
		}
		if s := strings.Join(parts, " "); s != "" {
			return s
		}
	}
	return ""
}

func (r RawItem) imageURL() string {
	for _, img := range r.Images {
		if img.URL != nil {
			return *img.URL
		}
	}
	return ""
}

func (r RawItem) categories() []string {
	var out []string
	for _, c := range r.Classifications {
		if c.Segment != nil && c.Segment.Name != nil {
			out = append(out, *c.Segment.Name)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
