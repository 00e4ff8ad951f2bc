package pattern

import (
	"errors"
	"strings"
	"testing"
)

func leaf(subtype string) *Spec {
	return &Spec{
		Category: CategoryBlock,
		Subtype:  subtype,
		Pattern:  `^(` + subtype + `.*\n?)`,
		Flags:    []string{FlagMultiline},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := New()

	known := NewGroup()
	if err := known.Add("BlockOne", leaf("BlockOne")); err != nil {
		t.Fatal(err)
	}
	if err := known.Add("BlockTwo", leaf("BlockTwo")); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("", "TypeKnownBlocks", known); err != nil {
		t.Fatal(err)
	}

	fallback := NewGroup()
	if err := fallback.Add("BlockCatchAll", leaf("BlockCatchAll")); err != nil {
		t.Fatal(err)
	}
	if err := c.Add("", DefaultBlocksGroup, fallback); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCatalogExpandOrder(t *testing.T) {
	c := testCatalog(t)

	var got []string
	for _, s := range c.Expand() {
		got = append(got, s.Subtype)
	}
	want := []string{"BlockOne", "BlockTwo", "BlockCatchAll"}
	if len(got) != len(want) {
		t.Fatalf("Expand() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCatalogAddDuplicate(t *testing.T) {
	c := testCatalog(t)
	err := c.Add("TypeKnownBlocks", "BlockOne", leaf("BlockOneBis"))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Add() duplicate error = %v, want ErrDuplicateName", err)
	}
}

func TestCatalogAddAppendsAtLowestPriority(t *testing.T) {
	c := testCatalog(t)
	if err := c.Add("TypeKnownBlocks", "BlockThree", leaf("BlockThree")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	specs := c.Expand()
	if specs[2].Subtype != "BlockThree" {
		t.Errorf("new spec at position 2 = %s, want BlockThree", specs[2].Subtype)
	}
}

func TestCatalogValidateDuplicateSubtype(t *testing.T) {
	c := testCatalog(t)
	if err := c.Add(DefaultBlocksGroup, "BlockOneAgain", leaf("BlockOne")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.Validate(); err == nil {
		t.Error("Validate() should reject catalog-wide duplicate subtype")
	}
}

func TestCatalogIsGeneric(t *testing.T) {
	c := testCatalog(t)
	if !c.IsGeneric("BlockCatchAll") {
		t.Error("IsGeneric(BlockCatchAll) = false, want true")
	}
	if c.IsGeneric("BlockOne") {
		t.Error("IsGeneric(BlockOne) = true, want false")
	}
}

func TestCatalogCloneIsIndependent(t *testing.T) {
	c := testCatalog(t)
	dup := c.Clone()

	if err := dup.Add("TypeKnownBlocks", "BlockThree", leaf("BlockThree")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("original Len() = %d after mutating clone, want 3", c.Len())
	}
	if dup.Len() != 4 {
		t.Errorf("clone Len() = %d, want 4", dup.Len())
	}
}

func TestCatalogMerge(t *testing.T) {
	c := testCatalog(t)

	other := New()
	extra := NewGroup()
	if err := extra.Add("BlockExtra", leaf("BlockExtra")); err != nil {
		t.Fatal(err)
	}
	if err := other.Add("", "TypeUserBlocks", extra); err != nil {
		t.Fatal(err)
	}

	if err := c.Merge(other); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	specs := c.Expand()
	if specs[len(specs)-1].Subtype != "BlockExtra" {
		t.Errorf("merged entries not at lowest priority, last = %s", specs[len(specs)-1].Subtype)
	}

	if err := c.Merge(other); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Merge() with colliding top-level name error = %v, want ErrDuplicateName", err)
	}
}

func TestCatalogNodeAndBlueprint(t *testing.T) {
	c := testCatalog(t)
	b := testBlueprint()
	if err := c.Add("TypeKnownBlocks", "BlueprintHeaders", b); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, ok := c.Blueprint("TypeKnownBlocks/BlueprintHeaders")
	if !ok {
		t.Fatal("Blueprint() did not find the node")
	}
	if got != b {
		t.Error("Blueprint() returned a different node")
	}

	if _, ok := c.Blueprint("TypeKnownBlocks/BlockOne"); ok {
		t.Error("Blueprint() on a leaf spec should report false")
	}
	if _, ok := c.Node("TypeKnownBlocks/BlockNope"); ok {
		t.Error("Node() on a missing path should report false")
	}
}

func TestCatalogTree(t *testing.T) {
	got := testCatalog(t).Tree()
	for _, want := range []string{"TypeKnownBlocks", "BlockOne", DefaultBlocksGroup} {
		if !strings.Contains(got, want) {
			t.Errorf("Tree() missing %q:\n%s", want, got)
		}
	}
}
