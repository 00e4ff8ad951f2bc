package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Units used by ORCA output.
const (
	unitHartree = "Eh"
	unitAU      = "a.u."
	unitDebye   = "Debye"
	unitEV      = "eV"
)

// RegisterORCA adds the built-in extractors for ORCA block subtypes.
func RegisterORCA(r *Registry) {
	r.MustRegister(NewExtractor("BlockOrcaTotalRunTime", extractOrcaTotalRunTime))
	r.MustRegister(NewExtractor("BlockOrcaFinalSinglePointEnergy", extractOrcaFinalSinglePointEnergy))
	r.MustRegister(NewExtractor("BlockOrcaScfConverged", extractOrcaScfConverged))
	r.MustRegister(NewExtractor("BlockOrcaGeometryConvergence", extractOrcaGeometryConvergence))
	r.MustRegister(NewExtractor("BlockOrcaTerminatedNormally", extractOrcaTerminatedNormally))
	r.MustRegister(NewExtractor("BlockOrcaVersion", extractOrcaVersion))
	r.MustRegister(NewExtractor("BlockOrcaDipoleMoment", extractOrcaDipoleMoment))
	r.MustRegister(NewExtractor("BlockOrcaOrbitalEnergies", extractOrcaOrbitalEnergies))
	r.MustRegister(NewExtractor("BlockOrcaTimingsForIndividualModules", extractOrcaTimings))
}

var orcaRunTimeRe = regexp.MustCompile(`TOTAL RUN TIME:\s*(\d+)\s*days\s*(\d+)\s*hours\s*(\d+)\s*minutes\s*(\d+)\s*seconds\s*(\d+)\s*msec`)

func extractOrcaTotalRunTime(raw string) (*Result, error) {
	m := orcaRunTimeRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, ErrNotHandled
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])
	msec, _ := strconv.Atoi(m[5])

	runTime := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(msec)*time.Millisecond

	return NewResult("`Run Time` is a duration").Set("Run Time", runTime), nil
}

var orcaEnergyRe = regexp.MustCompile(`FINAL SINGLE POINT ENERGY\s+(-?\d+\.\d+)`)

func extractOrcaFinalSinglePointEnergy(raw string) (*Result, error) {
	m := orcaEnergyRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, ErrNotHandled
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, err
	}
	return NewResult("`Energy` in Eh").Set("Energy", Quantity{Value: value, Unit: unitHartree}), nil
}

var orcaCyclesRe = regexp.MustCompile(`(\d+)\s+CYCLES`)

func extractOrcaScfConverged(raw string) (*Result, error) {
	result := NewResult("bool for `Success` of the SCF and int for amount of `Cycles`")
	result.Set("Success", strings.Contains(raw, "SUCCESS"))
	if m := orcaCyclesRe.FindStringSubmatch(raw); m != nil {
		cycles, _ := strconv.Atoi(m[1])
		result.Set("Cycles", cycles)
	}
	return result, nil
}

var orcaGeomRowRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z ]*?)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(YES|NO)\s*$`)

func extractOrcaGeometryConvergence(raw string) (*Result, error) {
	var criteria []string
	var values []float64
	converged := make(map[string]bool)
	all := true

	for _, line := range strings.Split(raw, "\n") {
		m := orcaGeomRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		value, _ := strconv.ParseFloat(m[2], 64)
		tolerance, _ := strconv.ParseFloat(m[3], 64)

		criteria = append(criteria, name)
		values = append(values, value, tolerance)
		converged[name] = m[4] == "YES"
		if m[4] != "YES" {
			all = false
		}
	}
	if len(criteria) == 0 {
		return nil, ErrNotHandled
	}

	table, err := NewTable([]string{"Value", "Tolerance"}, values)
	if err != nil {
		return nil, err
	}
	return NewResult("`Criteria` names the rows of the `Values` table; `Converged` holds the per-criterion verdicts").
		Set("Criteria", criteria).
		Set("Values", table).
		Set("Converged", converged).
		Set("All converged", all), nil
}

func extractOrcaTerminatedNormally(raw string) (*Result, error) {
	return NewResult("`Termination status` is always true; the block only exists on normal termination").
		Set("Termination status", true), nil
}

var orcaVersionRe = regexp.MustCompile(`Program Version (\S+)`)

func extractOrcaVersion(raw string) (*Result, error) {
	m := orcaVersionRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, ErrNotHandled
	}
	return NewResult("`Version` is the program version string").Set("Version", m[1]), nil
}

var (
	orcaXyzHeaderRe  = regexp.MustCompile(`(?m)[ \t]*X[ \t]+Y[ \t]+Z[ \t]*\n`)
	orcaThreeNumRe   = regexp.MustCompile(`([a-zA-Z ().]+):\s*(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)[ \t]*\n`)
	orcaSingleNumRe  = regexp.MustCompile(`([a-zA-Z ().]+):\s*(-?\d+\.\d+)[ \t]*(?:\n|$)`)
	orcaMagnitudeTag = "(Debye)"
)

func extractOrcaDipoleMoment(raw string) (*Result, error) {
	loc := orcaXyzHeaderRe.FindStringIndex(raw)
	if loc == nil {
		return nil, ErrNotHandled
	}
	body := raw[loc[1]:]

	result := NewResult("X/Y/Z contribution vectors in a.u. plus total magnitudes")
	for _, m := range orcaThreeNumRe.FindAllStringSubmatch(body, -1) {
		x, _ := strconv.ParseFloat(m[2], 64)
		y, _ := strconv.ParseFloat(m[3], 64)
		z, _ := strconv.ParseFloat(m[4], 64)
		result.Set(strings.TrimSpace(m[1]), Vector{Values: []float64{x, y, z}, Unit: unitAU})
	}
	for _, m := range orcaSingleNumRe.FindAllStringSubmatch(body, -1) {
		label := strings.TrimSpace(m[1])
		value, _ := strconv.ParseFloat(m[2], 64)
		unit := unitAU
		if strings.Contains(label, orcaMagnitudeTag) {
			unit = unitDebye
		}
		result.Set(label, Quantity{Value: value, Unit: unit})
	}
	if result.Len() == 0 {
		return nil, ErrNotHandled
	}
	return result, nil
}

var orcaOrbitalRowRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s*$`)

var orcaOrbitalColumns = []string{"NO", "OCC", "E(Eh)", "E(eV)"}

func orcaOrbitalRows(lines []string) []float64 {
	var values []float64
	for _, line := range lines {
		m := orcaOrbitalRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, field := range m[1:] {
			v, _ := strconv.ParseFloat(field, 64)
			values = append(values, v)
		}
	}
	return values
}

func extractOrcaOrbitalEnergies(raw string) (*Result, error) {
	lines := strings.Split(raw, "\n")

	if strings.Contains(raw, "SPIN UP ORBITALS") {
		var up, down []string
		collectingDown := false
		for _, line := range lines {
			switch {
			case strings.Contains(line, "SPIN UP ORBITALS"):
				collectingDown = false
			case strings.Contains(line, "SPIN DOWN ORBITALS"):
				collectingDown = true
			case collectingDown:
				down = append(down, line)
			default:
				up = append(up, line)
			}
		}
		upTable, err := NewTable(orcaOrbitalColumns, orcaOrbitalRows(up))
		if err != nil {
			return nil, err
		}
		downTable, err := NewTable(orcaOrbitalColumns, orcaOrbitalRows(down))
		if err != nil {
			return nil, err
		}
		return NewResult("`Spin Up` and `Spin Down` tables with columns NO, OCC, E(Eh), E(eV)").
			Set("Spin Up", upTable).
			Set("Spin Down", downTable), nil
	}

	values := orcaOrbitalRows(lines)
	if len(values) == 0 {
		return nil, ErrNotHandled
	}
	table, err := NewTable(orcaOrbitalColumns, values)
	if err != nil {
		return nil, err
	}
	return NewResult("`Orbitals` table with columns NO, OCC, E(Eh), E(eV)").
		Set("Orbitals", table), nil
}

var orcaModuleTimingRe = regexp.MustCompile(`([a-zA-Z ]+?)\s*\.\.\.\s*([\d.]+) sec`)

func extractOrcaTimings(raw string) (*Result, error) {
	timings := make(map[string]time.Duration)
	for _, m := range orcaModuleTimingRe.FindAllStringSubmatch(raw, -1) {
		sec, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		timings[strings.TrimSpace(m[1])] = time.Duration(sec * float64(time.Second))
	}
	if len(timings) == 0 {
		return nil, ErrNotHandled
	}
	return NewResult("`Timings` maps module names to durations").Set("Timings", timings), nil
}
