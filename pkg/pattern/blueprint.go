package pattern

import (
	"fmt"
	"strings"
)

// Structure is the shared skeleton of a Blueprint: every generated pattern
// is Beginning + fragment + Ending, compiled with Flags.
type Structure struct {
	Beginning string   `yaml:"beginning" json:"beginning"`
	Ending    string   `yaml:"ending" json:"ending"`
	Flags     []string `yaml:"flags" json:"flags"`
}

// Blueprint generates a family of structurally identical Specs from one
// pattern skeleton plus a per-entry distinguishing text fragment. Chemistry
// logs are full of blocks that differ only by a header keyword; a blueprint
// declares that family once.
type Blueprint struct {
	Order     []string          `yaml:"order" json:"order"`
	Structure Structure         `yaml:"pattern_structure" json:"pattern_structure"`
	Texts     map[string]string `yaml:"pattern_texts" json:"pattern_texts"`
	Comment   string            `yaml:"comment,omitempty" json:"comment,omitempty"`

	items map[string]*Spec
}

// spec materializes the entry with the given name. Expansion is the literal
// concatenation beginning + fragment + ending; nothing is escaped, so a
// fragment may itself contain regex syntax.
func (b *Blueprint) spec(name string) *Spec {
	if s, ok := b.items[name]; ok {
		return s
	}
	s := &Spec{
		Category: CategoryBlock,
		Subtype:  name,
		Pattern:  b.Structure.Beginning + b.Texts[name] + b.Structure.Ending,
		Flags:    b.Structure.Flags,
		Comment:  b.Comment,
	}
	if b.items == nil {
		b.items = make(map[string]*Spec)
	}
	b.items[name] = s
	return s
}

// Specs returns the blueprint's concrete specs in declared order.
func (b *Blueprint) Specs() []*Spec {
	out := make([]*Spec, 0, len(b.Order))
	for _, name := range b.Order {
		out = append(out, b.spec(name))
	}
	return out
}

// AddText appends a new entry at the end of the blueprint's order, giving
// it the lowest priority within the blueprint. Returns ErrDuplicateName if
// the name is already taken.
func (b *Blueprint) AddText(name, fragment string) error {
	if _, exists := b.Texts[name]; exists {
		return fmt.Errorf("blueprint entry %q: %w", name, ErrDuplicateName)
	}
	if b.Texts == nil {
		b.Texts = make(map[string]string)
	}
	b.Texts[name] = fragment
	b.Order = append(b.Order, name)
	return b.spec(name).validate(name)
}

func (b *Blueprint) validate(path string) error {
	if len(b.Order) == 0 {
		return configErrorf(path, nil, "blueprint has an empty order")
	}
	if b.Structure.Beginning == "" && b.Structure.Ending == "" {
		return configErrorf(path, nil, "blueprint pattern_structure is empty")
	}
	for _, name := range b.Order {
		if _, ok := b.Texts[name]; !ok {
			return configErrorf(path, nil, "order entry %q has no pattern_texts fragment", name)
		}
		if err := b.spec(name).validate(path + "/" + name); err != nil {
			return err
		}
	}
	return nil
}

// Node methods.

func (b *Blueprint) appendSpecs(dst []*Spec) []*Spec {
	return append(dst, b.Specs()...)
}

func (b *Blueprint) nodeLen() int { return len(b.Order) }

func (b *Blueprint) clone() Node {
	dup := &Blueprint{
		Order:     append([]string(nil), b.Order...),
		Structure: b.Structure,
		Comment:   b.Comment,
		Texts:     make(map[string]string, len(b.Texts)),
	}
	dup.Structure.Flags = append([]string(nil), b.Structure.Flags...)
	for name, text := range b.Texts {
		dup.Texts[name] = text
	}
	return dup
}

func (b *Blueprint) subtypes(dst []string) []string {
	return append(dst, b.Order...)
}

func (b *Blueprint) writeTree(sb *strings.Builder, name string, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s: Blueprint\n", indent, name)
	for _, s := range b.Specs() {
		fmt.Fprintf(sb, "%s  %s: %s\n", indent, s.Subtype, preview(s.Pattern, 60))
	}
}
