package extract

import (
	"strconv"
	"strings"
	"time"
)

// RegisterVASP adds the built-in extractors for VASP block subtypes.
func RegisterVASP(r *Registry) {
	r.MustRegister(NewExtractor("BlockVaspGeneralTiming", extractVaspGeneralTiming))
	r.MustRegister(NewExtractor("BlockVaspFreeEnergyOfTheIonElectronSystem", extractVaspFreeEnergy))
}

// extractVaspGeneralTiming parses the end-of-job accounting report. Keys
// carry their unit in parentheses: "(sec)" values become durations, other
// unit-tagged values become Quantities, unitless values stay strings.
func extractVaspGeneralTiming(raw string) (*Result, error) {
	result := NewResult("durations for time entries, unit-tagged quantities for memory, strings otherwise")

	for _, line := range strings.Split(raw, "\n") {
		rawKey, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		key, unit := splitUnit(strings.TrimSpace(rawKey))

		switch {
		case unit == "sec":
			if sec, err := strconv.ParseFloat(value, 64); err == nil {
				result.Set(key, time.Duration(sec*float64(time.Second)))
				continue
			}
			result.Set(key, value)
		case unit != "":
			if v, err := strconv.ParseFloat(strings.TrimSuffix(value, "."), 64); err == nil {
				result.Set(key, Quantity{Value: v, Unit: unit})
				continue
			}
			result.Set(key, value)
		default:
			result.Set(key, value)
		}
	}

	if result.Len() == 0 {
		return nil, ErrNotHandled
	}
	return result, nil
}

// splitUnit peels a trailing "(unit)" off a key, returning the bare key and
// the unit (empty when absent).
func splitUnit(key string) (string, string) {
	open := strings.LastIndex(key, "(")
	end := strings.LastIndex(key, ")")
	if open < 0 || end < open {
		return key, ""
	}
	return strings.TrimSpace(key[:open]), key[open+1 : end]
}

// extractVaspFreeEnergy parses the free-energy components table. Single
// values become Quantities in eV; the PAW double counting line carries two
// values and becomes a Vector.
func extractVaspFreeEnergy(raw string) (*Result, error) {
	result := NewResult("energy components in eV; `PAW double counting` is a two-component vector")

	for _, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, "=") {
			continue
		}
		cleaned := strings.TrimSpace(strings.ReplaceAll(line, "eV", ""))

		if strings.Contains(cleaned, "energy(sigma->0)") {
			first, second, _ := strings.Cut(cleaned, "energy(sigma->0) =")
			key, value, ok := strings.Cut(first, "=")
			if ok {
				if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
					result.Set(strings.TrimSpace(key), Quantity{Value: v, Unit: unitEV})
				}
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(second), 64); err == nil {
				result.Set("energy(sigma->0)", Quantity{Value: v, Unit: unitEV})
			}
			continue
		}

		key, value, _ := strings.Cut(cleaned, "=")
		fields := strings.Fields(value)
		switch len(fields) {
		case 0:
			continue
		case 1:
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				result.Set(strings.TrimSpace(key), Quantity{Value: v, Unit: unitEV})
			}
		default:
			values := make([]float64, 0, len(fields))
			for _, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					values = nil
					break
				}
				values = append(values, v)
			}
			if values != nil {
				result.Set(strings.TrimSpace(key), Vector{Values: values, Unit: unitEV})
			}
		}
	}

	if result.Len() == 0 {
		return nil, ErrNotHandled
	}
	return result, nil
}
