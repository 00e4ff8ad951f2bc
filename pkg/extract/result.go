// Package extract turns segmented blocks into structured data. Extraction
// routines are registered per block subtype; blocks without a routine fall
// back to their raw text so extraction never loses content.
package extract

import (
	"encoding/json"
	"fmt"
)

// FallbackItem is the item name under which a block's raw text is stored
// when no extraction routine produced structured data.
const FallbackItem = "raw data"

// Result holds named items extracted from one block, in insertion order.
type Result struct {
	names    []string
	items    map[string]any
	comment  string
	fallback bool
}

// NewResult creates an empty result with an optional comment describing the
// items an extractor produces.
func NewResult(comment string) *Result {
	return &Result{items: make(map[string]any), comment: comment}
}

// Set adds or replaces an item. Insertion order is preserved.
func (r *Result) Set(name string, value any) *Result {
	if _, ok := r.items[name]; !ok {
		r.names = append(r.names, name)
	}
	r.items[name] = value
	return r
}

// Get returns the named item.
func (r *Result) Get(name string) (any, bool) {
	v, ok := r.items[name]
	return v, ok
}

// Names returns the item names in insertion order.
func (r *Result) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of items.
func (r *Result) Len() int { return len(r.names) }

// Comment returns the human description attached by the extractor.
func (r *Result) Comment() string { return r.comment }

// Fallback reports whether the result is a raw-text fallback rather than
// structured data.
func (r *Result) Fallback() bool { return r.fallback }

// MarshalJSON renders the items as an object in insertion order.
func (r *Result) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range r.names {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.items[name])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", name, err)
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

func newFallback(comment, raw string) *Result {
	r := NewResult(comment)
	r.Set(FallbackItem, raw)
	r.fallback = true
	return r
}
