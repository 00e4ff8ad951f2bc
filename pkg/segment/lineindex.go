package segment

import (
	"sort"
	"strings"
)

// lineIndex maps byte offsets in a document to 1-based line numbers. Line
// starts are collected once so every block's line span is computed from
// original coordinates instead of being accumulated while carving, which
// keeps line numbers exact no matter how matches interleave.
type lineIndex struct {
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && i+1 < len(text) {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// lineOf returns the 1-based line number containing the byte at pos.
func (ix *lineIndex) lineOf(pos int) int {
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > pos
	})
}

// spanOf converts a half-open character span to an inclusive line span:
// the 1-based lines containing the span's first and last byte. A trailing
// newline belongs to the line it terminates.
func (ix *lineIndex) spanOf(chars Span) Span {
	if chars.Len() == 0 {
		line := ix.lineOf(chars.Start)
		return Span{Start: line, End: line}
	}
	return Span{
		Start: ix.lineOf(chars.Start),
		End:   ix.lineOf(chars.End - 1),
	}
}
