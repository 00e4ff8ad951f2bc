package pattern

import (
	"fmt"
	"strings"
)

// Node is one entry in a catalog tree: a concrete *Spec, a *Blueprint, or a
// nested *Group. The interface is closed; segmentation only ever sees the
// flattened []*Spec produced by Expand.
type Node interface {
	validate(path string) error
	appendSpecs(dst []*Spec) []*Spec
	subtypes(dst []string) []string
	nodeLen() int
	clone() Node
	writeTree(b *strings.Builder, name string, depth int)
}

// Group is an ordered collection of named child nodes. Declared order is
// match priority: earlier entries win ties.
type Group struct {
	order []string
	items map[string]Node
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{items: make(map[string]Node)}
}

// Add appends a child at the end of the group's order, giving it the lowest
// priority at this level. Returns ErrDuplicateName if the name is taken.
func (g *Group) Add(name string, n Node) error {
	if name == "" {
		return fmt.Errorf("group entry name cannot be empty")
	}
	if _, exists := g.items[name]; exists {
		return fmt.Errorf("group entry %q: %w", name, ErrDuplicateName)
	}
	if g.items == nil {
		g.items = make(map[string]Node)
	}
	g.items[name] = n
	g.order = append(g.order, name)
	return nil
}

// Get returns the child with the given name.
func (g *Group) Get(name string) (Node, bool) {
	n, ok := g.items[name]
	return n, ok
}

// Order returns a copy of the group's declared child order.
func (g *Group) Order() []string {
	return append([]string(nil), g.order...)
}

func (g *Group) validate(path string) error {
	for _, name := range g.order {
		childPath := name
		if path != "" {
			childPath = path + "/" + name
		}
		if err := g.items[name].validate(childPath); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) appendSpecs(dst []*Spec) []*Spec {
	for _, name := range g.order {
		dst = g.items[name].appendSpecs(dst)
	}
	return dst
}

func (g *Group) subtypes(dst []string) []string {
	for _, name := range g.order {
		dst = g.items[name].subtypes(dst)
	}
	return dst
}

func (g *Group) nodeLen() int {
	total := 0
	for _, name := range g.order {
		total += g.items[name].nodeLen()
	}
	return total
}

func (g *Group) clone() Node {
	dup := &Group{
		order: append([]string(nil), g.order...),
		items: make(map[string]Node, len(g.items)),
	}
	for name, n := range g.items {
		dup.items[name] = n.clone()
	}
	return dup
}

func (g *Group) writeTree(b *strings.Builder, name string, depth int) {
	fmt.Fprintf(b, "%s%s:\n", strings.Repeat("  ", depth), name)
	for _, child := range g.order {
		g.items[child].writeTree(b, child, depth+1)
	}
}

// DefaultBlocksGroup is the conventional name of the top-level group that
// holds the generic fallback patterns. Subtypes declared under it are
// reported as generic matches so downstream consumers can color-code
// specifically recognized vs. generically recognized blocks.
const DefaultBlocksGroup = "TypeDefaultBlocks"

// Catalog is the full ordered, hierarchical set of Specs and Blueprints
// used for one segmentation run. A catalog is an explicit value: several
// catalogs (e.g. one per program version) can coexist in one process.
type Catalog struct {
	root *Group
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{root: NewGroup()}
}

// Root exposes the top-level group.
func (c *Catalog) Root() *Group {
	return c.root
}

// group resolves a slash-separated path to a nested group. The empty path
// is the root.
func (c *Catalog) group(path string) (*Group, error) {
	g := c.root
	if path == "" {
		return g, nil
	}
	for _, part := range strings.Split(path, "/") {
		n, ok := g.items[part]
		if !ok {
			return nil, fmt.Errorf("catalog group %q not found", path)
		}
		sub, ok := n.(*Group)
		if !ok {
			return nil, fmt.Errorf("catalog entry %q is not a group", path)
		}
		g = sub
	}
	return g, nil
}

// Add inserts a node at the end of the group named by parentPath (slash
// separated, "" for the root), giving it the lowest priority within that
// group. Returns ErrDuplicateName if the name already exists at that level.
func (c *Catalog) Add(parentPath, name string, n Node) error {
	g, err := c.group(parentPath)
	if err != nil {
		return err
	}
	return g.Add(name, n)
}

// Node resolves a slash-separated path to any node in the tree.
func (c *Catalog) Node(path string) (Node, bool) {
	parts := strings.Split(path, "/")
	parent := strings.Join(parts[:len(parts)-1], "/")
	g, err := c.group(parent)
	if err != nil {
		return nil, false
	}
	return g.Get(parts[len(parts)-1])
}

// Blueprint resolves a path to a blueprint node, for runtime additions like
// registering a user-defined header keyword.
func (c *Catalog) Blueprint(path string) (*Blueprint, bool) {
	n, ok := c.Node(path)
	if !ok {
		return nil, false
	}
	b, ok := n.(*Blueprint)
	return b, ok
}

// Expand produces the flattened, priority-ordered sequence of concrete
// specs: depth-first over declared child order, blueprints materialized.
func (c *Catalog) Expand() []*Spec {
	return c.root.appendSpecs(nil)
}

// Validate checks every entry in the tree and the catalog-wide uniqueness
// of subtype names. The first violation is returned as a *ConfigError.
func (c *Catalog) Validate() error {
	if err := c.root.validate(""); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, subtype := range c.root.subtypes(nil) {
		if seen[subtype] {
			return configErrorf(subtype, nil, "subtype declared more than once in catalog")
		}
		seen[subtype] = true
	}
	return nil
}

// IsGeneric reports whether a subtype belongs to the catalog's fallback
// tier (the top-level DefaultBlocksGroup group).
func (c *Catalog) IsGeneric(subtype string) bool {
	n, ok := c.root.Get(DefaultBlocksGroup)
	if !ok {
		return false
	}
	for _, s := range n.subtypes(nil) {
		if s == subtype {
			return true
		}
	}
	return false
}

// Len counts the concrete specs the catalog expands to.
func (c *Catalog) Len() int {
	return c.root.nodeLen()
}

// Clone deep-copies the catalog so callers can add user patterns without
// mutating a shared default.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{root: c.root.clone().(*Group)}
}

// Merge appends every top-level entry of other (deep-copied) to the end of
// this catalog's root order. Name collisions at the top level are errors.
func (c *Catalog) Merge(other *Catalog) error {
	for _, name := range other.root.order {
		if err := c.root.Add(name, other.root.items[name].clone()); err != nil {
			return err
		}
	}
	return nil
}

// Tree renders the catalog hierarchy as an indented listing, mainly for the
// CLI and debugging.
func (c *Catalog) Tree() string {
	var b strings.Builder
	b.WriteString("Catalog:\n")
	for _, name := range c.root.order {
		c.root.items[name].writeTree(&b, name, 1)
	}
	return b.String()
}
