package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/chemsift/chemsift/pkg/segment"
)

// ErrNotHandled is returned by an extractor that recognized nothing in the
// block's raw text. The registry converts it into a raw-text fallback.
var ErrNotHandled = errors.New("extractor found no data in block")

// ErrDuplicateRegistration is returned when a subtype already has an
// extractor.
var ErrDuplicateRegistration = errors.New("extractor already registered")

// Extractor turns the raw text of blocks of one subtype into a Result.
type Extractor interface {
	// Subtype names the block subtype this extractor handles.
	Subtype() string

	// Extract parses the block's raw text. Returning ErrNotHandled or any
	// other error makes the registry fall back to raw text.
	Extract(raw string) (*Result, error)
}

type funcExtractor struct {
	subtype string
	fn      func(raw string) (*Result, error)
}

func (e *funcExtractor) Subtype() string                     { return e.subtype }
func (e *funcExtractor) Extract(raw string) (*Result, error) { return e.fn(raw) }

// NewExtractor wraps a function as an Extractor for the given subtype.
func NewExtractor(subtype string, fn func(raw string) (*Result, error)) Extractor {
	return &funcExtractor{subtype: subtype, fn: fn}
}

// Registry maps block subtypes to extraction routines and memoizes results
// per block ID, so each block is parsed at most once no matter how often its
// data is requested.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
	cache      map[uuid.UUID]*Result
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
		cache:      make(map[uuid.UUID]*Result),
	}
}

// Register adds an extractor for its subtype. Re-registering the identical
// extractor value is a no-op; offering a different extractor for an already
// registered subtype returns ErrDuplicateRegistration.
func (r *Registry) Register(e Extractor) error {
	if e == nil || e.Subtype() == "" {
		return fmt.Errorf("extractor must have a subtype")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, exists := r.extractors[e.Subtype()]; exists {
		if existing == e {
			return nil
		}
		return fmt.Errorf("subtype %q: %w", e.Subtype(), ErrDuplicateRegistration)
	}
	r.extractors[e.Subtype()] = e
	return nil
}

// MustRegister is Register for program-defined extractors whose subtypes are
// known to be unique.
func (r *Registry) MustRegister(e Extractor) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Resolve returns the extractor registered for a subtype.
func (r *Registry) Resolve(subtype string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[subtype]
	return e, ok
}

// HasData reports whether structured extraction is available for a subtype.
func (r *Registry) HasData(subtype string) bool {
	_, ok := r.Resolve(subtype)
	return ok
}

// Subtypes returns the registered subtypes, sorted.
func (r *Registry) Subtypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.extractors))
	for subtype := range r.extractors {
		out = append(out, subtype)
	}
	sort.Strings(out)
	return out
}

// Extract returns the block's structured data, computing it on first request
// and serving the memoized result afterwards. Spacer blocks yield nil. When
// no extractor is registered for the subtype, or the extractor fails, the
// result is a raw-text fallback and a warning is logged.
func (r *Registry) Extract(b *segment.Block) *Result {
	if b.IsSpacer() {
		return nil
	}

	r.mu.RLock()
	cached, ok := r.cache[b.ID()]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	result := r.extract(b)

	r.mu.Lock()
	r.cache[b.ID()] = result
	r.mu.Unlock()
	return result
}

// DefaultRegistry returns a registry preloaded with every built-in
// extractor.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterORCA(r)
	RegisterGPAW(r)
	RegisterVASP(r)
	return r
}

func (r *Registry) extract(b *segment.Block) *Result {
	e, ok := r.Resolve(b.Subtype())
	if !ok {
		slog.Warn("no extraction routine for block subtype; collecting raw text",
			"subtype", b.Subtype(), "char_span", b.CharSpan())
		return newFallback("no extraction routine registered for this block subtype; raw text collected", b.Raw())
	}

	result, err := e.Extract(b.Raw())
	if err != nil {
		slog.Warn("extraction failed; collecting raw text",
			"subtype", b.Subtype(), "char_span", b.CharSpan(), "err", err)
		return newFallback("extraction routine found no structured data in the block; raw text collected", b.Raw())
	}
	return result
}
