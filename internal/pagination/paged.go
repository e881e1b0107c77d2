package pagination

import "encoding/json"

// Paged is one page of items together with the window it was resolved to.
type Paged[T any] struct {
	Window PageWindow
	Items  []T
}

// NewPaged attaches items to a window. A nil slice is kept as an empty page.
func NewPaged[T any](w PageWindow, items []T) Paged[T] {
	if items == nil {
		items = []T{}
	}
	return Paged[T]{Window: w, Items: items}
}

// MarshalJSON flattens the window fields next to items.
func (p Paged[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(struct {
		Items []T `json:"items"`
		windowJSON
	}{
		Items:      items,
		windowJSON: p.Window.wire(),
	})
}
