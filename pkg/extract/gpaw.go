package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const unitElemAngstrom = "|e|*Ang"

// RegisterGPAW adds the built-in extractors for GPAW block subtypes.
func RegisterGPAW(r *Registry) {
	r.MustRegister(NewExtractor("BlockGpawDipole", extractGpawDipole))
	r.MustRegister(NewExtractor("BlockGpawConvergedAfter", extractGpawConvergedAfter))
	r.MustRegister(NewExtractor("BlockGpawEnergyContributions", extractGpawEnergyContributions))
}

var floatRe = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

func extractGpawDipole(raw string) (*Result, error) {
	fields := floatRe.FindAllString(raw, -1)
	if len(fields) == 0 {
		return nil, ErrNotHandled
	}
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, _ := strconv.ParseFloat(f, 64)
		values = append(values, v)
	}
	return NewResult("`Dipole Moment` components in |e|*Ang").
		Set("Dipole Moment", Vector{Values: values, Unit: unitElemAngstrom}), nil
}

var intRe = regexp.MustCompile(`\d+`)

func extractGpawConvergedAfter(raw string) (*Result, error) {
	m := intRe.FindString(raw)
	if m == "" {
		return nil, ErrNotHandled
	}
	iterations, _ := strconv.Atoi(m)
	return NewResult("`Iterations` count; `Converged` is always true for this block").
		Set("Iterations", iterations).
		Set("Converged", true), nil
}

func extractGpawEnergyContributions(raw string) (*Result, error) {
	result := NewResult("`Reference`, `Free energy`, `Extrapolated` and per-term `Contributions`, all in eV")
	contributions := make(map[string]Quantity)

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.Contains(line, "reference"):
			field := line[strings.LastIndex(line, "=")+1:]
			field = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(field), ")"))
			if v, err := strconv.ParseFloat(field, 64); err == nil {
				result.Set("Reference", Quantity{Value: v, Unit: unitEV})
			}
		case strings.Contains(line, "Free energy"):
			if v, ok := trailingFloat(line); ok {
				result.Set("Free energy", Quantity{Value: v, Unit: unitEV})
			}
		case strings.Contains(line, "Extrapolated"):
			if v, ok := trailingFloat(line); ok {
				result.Set("Extrapolated", Quantity{Value: v, Unit: unitEV})
			}
		case strings.Contains(line, ":"):
			key, value, _ := strings.Cut(line, ":")
			if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				contributions[strings.TrimSpace(key)] = Quantity{Value: v, Unit: unitEV}
			}
		}
	}

	if len(contributions) > 0 {
		result.Set("Contributions", contributions)
	}
	if result.Len() == 0 {
		return nil, ErrNotHandled
	}
	return result, nil
}

func trailingFloat(line string) (float64, bool) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return v, err == nil
}
