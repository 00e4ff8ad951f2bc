package extract

import (
	"testing"
	"time"
)

func TestVaspGeneralTiming(t *testing.T) {
	raw := "General timing and accounting informations for this job:\n" +
		"========================================================\n" +
		"\n" +
		"          Total CPU time used (sec):     1410.943\n" +
		"                    User time (sec):     1394.056\n" +
		"\n" +
		"           Maximum memory used (kb):      201324.\n" +
		"           Average memory used (kb):          N/A\n" +
		"\n" +
		"                  Minor page faults:       310377\n"

	result, err := extractVaspGeneralTiming(raw)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	cpu, _ := result.Get("Total CPU time used")
	want := time.Duration(1410.943 * float64(time.Second))
	if cpu != want {
		t.Errorf("Total CPU time used = %v, want %v", cpu, want)
	}

	mem, _ := result.Get("Maximum memory used")
	if mem != (Quantity{Value: 201324, Unit: "kb"}) {
		t.Errorf("Maximum memory used = %v", mem)
	}

	if na, _ := result.Get("Average memory used"); na != "N/A" {
		t.Errorf("Average memory used = %v, want N/A", na)
	}
	if faults, _ := result.Get("Minor page faults"); faults != "310377" {
		t.Errorf("Minor page faults = %v, want the string 310377", faults)
	}
}

func TestVaspFreeEnergy(t *testing.T) {
	raw := "Free energy of the ion-electron system (eV)\n" +
		"---------------------------------------------------\n" +
		"alpha Z        PSCENC =       856.26359874\n" +
		"PAW double counting   =     40935.10832877   -40536.82457645\n" +
		"free energy    TOTEN  =      -367.20385430 eV\n" +
		"\n" +
		"energy without entropy =     -367.08842988  energy(sigma->0) =     -367.14614209\n"

	result, err := extractVaspFreeEnergy(raw)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	if got, _ := result.Get("alpha Z        PSCENC"); got != (Quantity{Value: 856.26359874, Unit: "eV"}) {
		t.Errorf("alpha Z PSCENC = %v", got)
	}

	paw, ok := result.Get("PAW double counting")
	if !ok {
		t.Fatal("result missing PAW double counting")
	}
	vec := paw.(Vector)
	if len(vec.Values) != 2 || vec.Values[1] != -40536.82457645 {
		t.Errorf("PAW double counting = %v", vec)
	}

	if got, _ := result.Get("free energy    TOTEN"); got != (Quantity{Value: -367.20385430, Unit: "eV"}) {
		t.Errorf("free energy TOTEN = %v", got)
	}
	if got, _ := result.Get("energy without entropy"); got != (Quantity{Value: -367.08842988, Unit: "eV"}) {
		t.Errorf("energy without entropy = %v", got)
	}
	if got, _ := result.Get("energy(sigma->0)"); got != (Quantity{Value: -367.14614209, Unit: "eV"}) {
		t.Errorf("energy(sigma->0) = %v", got)
	}
}

func TestSplitUnit(t *testing.T) {
	tests := []struct {
		key      string
		wantKey  string
		wantUnit string
	}{
		{"Total CPU time used (sec)", "Total CPU time used", "sec"},
		{"Maximum memory used (kb)", "Maximum memory used", "kb"},
		{"Minor page faults", "Minor page faults", ""},
	}
	for _, tt := range tests {
		key, unit := splitUnit(tt.key)
		if key != tt.wantKey || unit != tt.wantUnit {
			t.Errorf("splitUnit(%q) = (%q, %q), want (%q, %q)",
				tt.key, key, unit, tt.wantKey, tt.wantUnit)
		}
	}
}
