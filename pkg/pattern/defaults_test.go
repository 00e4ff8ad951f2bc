package pattern

import "testing"

func TestDefaultCatalogs(t *testing.T) {
	for _, mode := range []Mode{ModeORCA, ModeGPAW, ModeVASP} {
		t.Run(string(mode), func(t *testing.T) {
			c, err := Default(mode)
			if err != nil {
				t.Fatalf("Default(%s) error = %v", mode, err)
			}
			if err := c.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if c.Len() == 0 {
				t.Error("default catalog is empty")
			}
			if _, ok := c.Root().Get(DefaultBlocksGroup); !ok {
				t.Errorf("default catalog missing %s group", DefaultBlocksGroup)
			}
		})
	}
}

func TestDefaultUnknownMode(t *testing.T) {
	if _, err := Default("mopac"); err == nil {
		t.Error("Default() with unknown mode should return error")
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	first, err := Default(ModeORCA)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if err := first.Add("", "TypeUserBlocks", NewGroup()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	second, err := Default(ModeORCA)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if _, ok := second.Root().Get("TypeUserBlocks"); ok {
		t.Error("mutating one Default() result leaked into the next")
	}
}

func TestDefaultOrcaKnownSubtypes(t *testing.T) {
	c, err := Default(ModeORCA)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	subtypes := make(map[string]bool)
	for _, s := range c.Expand() {
		subtypes[s.Subtype] = true
	}
	for _, want := range []string{
		"BlockOrcaTotalRunTime",
		"BlockOrcaFinalSinglePointEnergy",
		"BlockOrcaDipoleMoment",
		"BlockOrcaOrbitalEnergies",
		"BlockOrcaVersion",
		"BlockOrcaUnrecognizedMessage",
		"Spacer",
	} {
		if !subtypes[want] {
			t.Errorf("ORCA catalog missing subtype %s", want)
		}
	}

	if !c.IsGeneric("BlockOrcaUnrecognizedMessage") {
		t.Error("IsGeneric(BlockOrcaUnrecognizedMessage) = false, want true")
	}
	if c.IsGeneric("BlockOrcaTotalRunTime") {
		t.Error("IsGeneric(BlockOrcaTotalRunTime) = true, want false")
	}
}
