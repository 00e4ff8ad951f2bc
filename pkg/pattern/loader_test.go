package pattern

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const loaderYAML = `
order:
  - TypeKnownBlocks
  - Spacer

TypeKnownBlocks:
  order:
    - BlockGreeting
    - BlueprintHeaders
  BlockGreeting:
    p_type: Block
    p_subtype: BlockGreeting
    pattern: '^([ \t]*HELLO.*\n?)'
    flags: [MULTILINE]
    comment: greeting line
  BlueprintHeaders:
    order:
      - BlockAlpha
    pattern_structure:
      beginning: '^([ \t]*[-*#=]{5,}[ \t]*\n[ \t]*'
      ending: '[ \t]*\n[ \t]*[-*#=]{5,}[ \t]*\n(?:.+\n)*)'
      flags: [MULTILINE]
    pattern_texts:
      BlockAlpha: 'ALPHA DATA'

Spacer:
  p_type: Spacer
  p_subtype: Spacer
  pattern: '^((?:[ \t]*\n)+)'
  flags: [MULTILINE]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(loaderYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var got []string
	for _, s := range c.Expand() {
		got = append(got, s.Subtype)
	}
	want := []string{"BlockGreeting", "BlockAlpha", "Spacer"}
	if len(got) != len(want) {
		t.Fatalf("Expand() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if _, ok := c.Blueprint("TypeKnownBlocks/BlueprintHeaders"); !ok {
		t.Error("blueprint node not reachable by path")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing order", `
BlockA:
  p_type: Block
  p_subtype: BlockA
  pattern: '^(A.*\n?)'
  flags: [MULTILINE]
`},
		{"order entry not defined", `
order: [BlockA, BlockB]
BlockA:
  p_type: Block
  p_subtype: BlockA
  pattern: '^(A.*\n?)'
  flags: [MULTILINE]
`},
		{"invalid spec", `
order: [BlockA]
BlockA:
  p_type: Block
  p_subtype: BlockA
  pattern: 'unanchored'
  flags: [MULTILINE]
`},
		{"duplicate subtype across groups", `
order: [G1, G2]
G1:
  order: [BlockA]
  BlockA:
    p_type: Block
    p_subtype: BlockA
    pattern: '^(A.*\n?)'
    flags: [MULTILINE]
G2:
  order: [BlockACopy]
  BlockACopy:
    p_type: Block
    p_subtype: BlockA
    pattern: '^(AA.*\n?)'
    flags: [MULTILINE]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() = nil error, want failure")
			}
		})
	}
}

func TestParseUnorderedEntrySkipped(t *testing.T) {
	c, err := Parse([]byte(`
order: [BlockA]
BlockA:
  p_type: Block
  p_subtype: BlockA
  pattern: '^(A.*\n?)'
  flags: [MULTILINE]
BlockForgotten:
  p_type: Block
  p_subtype: BlockForgotten
  pattern: '^(F.*\n?)'
  flags: [MULTILINE]
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (unordered entry excluded)", c.Len())
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	first := `
order: [TypeUserA]
TypeUserA:
  order: [BlockUserA]
  BlockUserA:
    p_type: Block
    p_subtype: BlockUserA
    pattern: '^(AAA.*\n?)'
    flags: [MULTILINE]
`
	second := `
order: [TypeUserB]
TypeUserB:
  order: [BlockUserB]
  BlockUserB:
    p_type: Block
    p_subtype: BlockUserB
    pattern: '^(BBB.*\n?)'
    flags: [MULTILINE]
`
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(first), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.yml"), []byte(second), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	c, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadDirectory() on missing dir error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(loaderYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	var cfgErr *ConfigError
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on missing file should return error")
	} else if errors.As(err, &cfgErr) {
		t.Error("missing file should not be reported as a ConfigError")
	}
}
