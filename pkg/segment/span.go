// Package segment carves chemistry program output into an ordered,
// non-overlapping, total sequence of blocks using a pattern catalog.
package segment

import "fmt"

// Span is a (Start, End) range. Character spans are half-open [Start, End)
// byte offsets into the source document; line spans are inclusive 1-based
// line numbers where Start and End are the first and last line.
type Span struct {
	Start int
	End   int
}

// Len returns the number of units the span covers.
func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string { return fmt.Sprintf("(%d, %d)", s.Start, s.End) }
