package extract

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Quantity is a scalar with a unit, e.g. an energy in Eh or a dipole
// magnitude in Debye.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (q Quantity) String() string { return fmt.Sprintf("%g %s", q.Value, q.Unit) }

// Vector is a fixed set of components sharing one unit, e.g. the X/Y/Z
// contributions to a dipole moment.
type Vector struct {
	Values []float64 `json:"values"`
	Unit   string    `json:"unit"`
}

// Table is a rectangular numeric dataset with named columns, backed by a
// dense matrix so callers can feed it straight into numeric routines.
type Table struct {
	Columns []string
	Data    *mat.Dense
}

// NewTable builds a table from row-major values. Row count is derived from
// the value count, which must be a multiple of the column count.
func NewTable(columns []string, values []float64) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table needs at least one column")
	}
	if len(values)%len(columns) != 0 {
		return nil, fmt.Errorf("table with %d columns cannot hold %d values", len(columns), len(values))
	}
	rows := len(values) / len(columns)
	if rows == 0 {
		return &Table{Columns: append([]string(nil), columns...)}, nil
	}
	return &Table{
		Columns: append([]string(nil), columns...),
		Data:    mat.NewDense(rows, len(columns), values),
	}, nil
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if t.Data == nil {
		return 0
	}
	r, _ := t.Data.Dims()
	return r
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		if t.Data == nil {
			return nil, true
		}
		return mat.Col(nil, j, t.Data), true
	}
	return nil, false
}

// At returns the value at row i of the named column.
func (t *Table) At(i int, name string) (float64, bool) {
	for j, c := range t.Columns {
		if c == name {
			return t.Data.At(i, j), true
		}
	}
	return 0, false
}
