package segment

import (
	"strings"

	"github.com/google/uuid"
)

// Document is the result of segmenting one source text: every byte of the
// source is covered by exactly one block, in order, without overlap.
type Document struct {
	source string
	blocks []*Block
	byID   map[uuid.UUID]*Block
}

func newDocument(source string, blocks []*Block) *Document {
	byID := make(map[uuid.UUID]*Block, len(blocks))
	for _, b := range blocks {
		byID[b.ID()] = b
	}
	return &Document{source: source, blocks: blocks, byID: byID}
}

// Text returns the original source text.
func (d *Document) Text() string { return d.source }

// Blocks returns the document's blocks in source order.
func (d *Document) Blocks() []*Block {
	return append([]*Block(nil), d.blocks...)
}

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// ByID looks a block up by its identifier.
func (d *Document) ByID(id uuid.UUID) (*Block, bool) {
	b, ok := d.byID[id]
	return b, ok
}

// Filter returns the blocks, in order, for which keep returns true.
func (d *Document) Filter(keep func(*Block) bool) []*Block {
	var out []*Block
	for _, b := range d.blocks {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// BySubtype returns blocks with the given subtype.
func (d *Document) BySubtype(subtype string) []*Block {
	return d.Filter(func(b *Block) bool { return b.Subtype() == subtype })
}

// ByReadableName returns blocks whose derived title equals name.
func (d *Document) ByReadableName(name string) []*Block {
	return d.Filter(func(b *Block) bool { return b.ReadableName() == name })
}

// WithSubstring returns blocks whose raw text contains s.
func (d *Document) WithSubstring(s string) []*Block {
	return d.Filter(func(b *Block) bool { return strings.Contains(b.Raw(), s) })
}

// WithoutSubstring returns blocks whose raw text does not contain s.
func (d *Document) WithoutSubstring(s string) []*Block {
	return d.Filter(func(b *Block) bool { return !strings.Contains(b.Raw(), s) })
}

// InCharRange returns blocks fully contained in the half-open byte range.
func (d *Document) InCharRange(r Span) []*Block {
	return d.Filter(func(b *Block) bool {
		return b.CharSpan().Start >= r.Start && b.CharSpan().End <= r.End
	})
}

// InLineRange returns blocks fully contained in the inclusive line range.
func (d *Document) InLineRange(r Span) []*Block {
	return d.Filter(func(b *Block) bool {
		return b.LineSpan().Start >= r.Start && b.LineSpan().End <= r.End
	})
}
