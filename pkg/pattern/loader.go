package pattern

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog configuration is nested YAML. A group is a mapping with an
// "order" list naming its children in priority order; a leaf spec is a
// mapping with a "pattern" key; a blueprint is a mapping with a
// "pattern_structure" key; anything else is a nested group.

// Load builds a catalog from a YAML file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML configuration and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return New(), nil
	}
	root, err := parseGroup("", doc.Content[0])
	if err != nil {
		return nil, err
	}
	c := &Catalog{root: root}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseGroup(path string, n *yaml.Node) (*Group, error) {
	if n.Kind != yaml.MappingNode {
		return nil, configErrorf(path, nil, "group must be a mapping")
	}

	children := make(map[string]*yaml.Node, len(n.Content)/2)
	var order []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := n.Content[i+1]
		if key == "order" {
			if err := value.Decode(&order); err != nil {
				return nil, configErrorf(path, err, "order must be a list of names")
			}
			continue
		}
		if _, dup := children[key]; dup {
			return nil, configErrorf(joinPath(path, key), ErrDuplicateName, "declared twice in one group")
		}
		children[key] = value
	}
	if order == nil {
		return nil, configErrorf(path, nil, "group is missing its order list")
	}

	g := NewGroup()
	for _, name := range order {
		childNode, ok := children[name]
		if !ok {
			return nil, configErrorf(joinPath(path, name), nil, "listed in order but not defined")
		}
		child, err := parseNode(joinPath(path, name), childNode)
		if err != nil {
			return nil, err
		}
		if err := g.Add(name, child); err != nil {
			return nil, configErrorf(joinPath(path, name), err, "duplicate order entry")
		}
		delete(children, name)
	}

	// Entries defined but not ordered are skipped, matching the original
	// loader, which warned and excluded them from processing.
	if len(children) > 0 {
		names := make([]string, 0, len(children))
		for name := range children {
			names = append(names, name)
		}
		sort.Strings(names)
		slog.Warn("catalog entries defined but not listed in order; skipping",
			"group", path, "entries", strings.Join(names, ", "))
	}

	return g, nil
}

func parseNode(path string, n *yaml.Node) (Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, configErrorf(path, nil, "entry must be a mapping")
	}
	switch {
	case hasKey(n, "pattern"):
		var s Spec
		if err := n.Decode(&s); err != nil {
			return nil, configErrorf(path, err, "malformed spec")
		}
		return &s, nil
	case hasKey(n, "pattern_structure"):
		var b Blueprint
		if err := n.Decode(&b); err != nil {
			return nil, configErrorf(path, err, "malformed blueprint")
		}
		return &b, nil
	default:
		return parseGroup(path, n)
	}
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "/" + name
}

// LoadDirectory loads every .yaml/.yml file in dir (lexical order) and
// merges them into one catalog. A missing directory yields an empty
// catalog, so a user pattern directory is optional.
func LoadDirectory(dir string) (*Catalog, error) {
	merged := New()
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		c, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(c); err != nil {
			return nil, fmt.Errorf("merging %s: %w", name, err)
		}
	}
	return merged, nil
}
