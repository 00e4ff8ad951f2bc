package pattern

import (
	"errors"
	"testing"
)

func testBlueprint() *Blueprint {
	return &Blueprint{
		Order: []string{"BlockAlpha", "BlockBeta"},
		Structure: Structure{
			Beginning: `^([ \t]*[-*#=]{5,}[ \t]*\n[ \t]*`,
			Ending:    `[ \t]*\n[ \t]*[-*#=]{5,}[ \t]*\n(?:.+\n)*)`,
			Flags:     []string{FlagMultiline},
		},
		Texts: map[string]string{
			"BlockAlpha": "ALPHA DATA",
			"BlockBeta":  "BETA DATA",
		},
	}
}

func TestBlueprintSpecs(t *testing.T) {
	b := testBlueprint()

	specs := b.Specs()
	if len(specs) != 2 {
		t.Fatalf("Specs() len = %d, want 2", len(specs))
	}
	if specs[0].Subtype != "BlockAlpha" || specs[1].Subtype != "BlockBeta" {
		t.Errorf("Specs() order = %s, %s; want BlockAlpha, BlockBeta",
			specs[0].Subtype, specs[1].Subtype)
	}
}

// Expanding a blueprint must be byte-identical to writing
// beginning+fragment+ending by hand for each entry.
func TestBlueprintExpansionEquivalence(t *testing.T) {
	b := testBlueprint()

	for _, name := range b.Order {
		want := b.Structure.Beginning + b.Texts[name] + b.Structure.Ending
		var got string
		for _, s := range b.Specs() {
			if s.Subtype == name {
				got = s.Pattern
			}
		}
		if got != want {
			t.Errorf("expanded pattern for %s = %q, want %q", name, got, want)
		}
	}
}

func TestBlueprintAddText(t *testing.T) {
	b := testBlueprint()

	if err := b.AddText("BlockGamma", "GAMMA DATA"); err != nil {
		t.Fatalf("AddText() error = %v", err)
	}

	specs := b.Specs()
	if len(specs) != 3 {
		t.Fatalf("Specs() len = %d, want 3", len(specs))
	}
	if specs[2].Subtype != "BlockGamma" {
		t.Errorf("new entry position = %s, want BlockGamma last (lowest priority)", specs[2].Subtype)
	}

	if err := b.AddText("BlockGamma", "again"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddText() duplicate error = %v, want ErrDuplicateName", err)
	}
}

func TestBlueprintAddTextValidates(t *testing.T) {
	b := testBlueprint()
	// Fragment breaking the combined pattern must be rejected.
	if err := b.AddText("BlockBroken", `([`); err == nil {
		t.Error("AddText() with malformed fragment should return error")
	}
}

func TestBlueprintValidate(t *testing.T) {
	b := testBlueprint()
	if err := b.validate("test"); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	missing := testBlueprint()
	missing.Order = append(missing.Order, "BlockMissing")
	if err := missing.validate("test"); err == nil {
		t.Error("validate() should fail for order entry without fragment")
	}

	empty := testBlueprint()
	empty.Order = nil
	if err := empty.validate("test"); err == nil {
		t.Error("validate() should fail for empty order")
	}
}

func TestBlueprintCloneIsDeep(t *testing.T) {
	b := testBlueprint()
	dup := b.clone().(*Blueprint)

	if err := dup.AddText("BlockGamma", "GAMMA DATA"); err != nil {
		t.Fatalf("AddText() error = %v", err)
	}
	if len(b.Order) != 2 {
		t.Errorf("original order len = %d after mutating clone, want 2", len(b.Order))
	}
	if _, ok := b.Texts["BlockGamma"]; ok {
		t.Error("original texts gained entry added to clone")
	}
}
