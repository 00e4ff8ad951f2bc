package segment

import (
	"fmt"
	"strings"

	"github.com/chemsift/chemsift/pkg/pattern"
)

// piece is one contiguous range of the source during carving: either an
// already-claimed block or still-unclaimed text. Spans are always original
// document coordinates, so later specs never see claimed ranges and all
// position metadata survives the carving.
type piece struct {
	span  Span
	text  string
	block *Block
}

type config struct {
	onProgress func(done, total int)
}

// Option adjusts a segmentation run.
type Option func(*config)

// WithProgress registers a callback invoked after each spec has been applied,
// with the number of specs processed so far and the total. Useful for large
// inputs with large catalogs.
func WithProgress(fn func(done, total int)) Option {
	return func(c *config) { c.onProgress = fn }
}

// Segment carves text into blocks using the catalog's specs in priority
// order. Every byte of the input ends up in exactly one block: claimed text
// becomes a block of the matching spec's subtype, leftover non-blank text
// becomes SubtypeUnknown and leftover blank runs become Spacer blocks.
func Segment(text string, cat *pattern.Catalog, opts ...Option) (*Document, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	if text == "" {
		return newDocument(text, nil), nil
	}

	idx := newLineIndex(text)
	pieces := []piece{{span: Span{Start: 0, End: len(text)}, text: text}}

	specs := cat.Expand()
	for i, spec := range specs {
		var err error
		pieces, err = carve(pieces, spec, idx, cat.IsGeneric(spec.Subtype))
		if err != nil {
			return nil, err
		}
		if cfg.onProgress != nil {
			cfg.onProgress(i+1, len(specs))
		}
	}

	blocks := make([]*Block, 0, len(pieces))
	for _, p := range pieces {
		if p.block != nil {
			blocks = append(blocks, p.block)
			continue
		}
		blocks = append(blocks, sweep(p, idx))
	}
	return newDocument(text, blocks), nil
}

// carve applies one spec to every unclaimed piece, splitting matches out as
// blocks. Claimed pieces pass through untouched.
func carve(pieces []piece, spec *pattern.Spec, idx *lineIndex, generic bool) ([]piece, error) {
	re, err := spec.Compile()
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", spec.Subtype, err)
	}

	out := make([]piece, 0, len(pieces))
	for _, p := range pieces {
		if p.block != nil {
			out = append(out, p)
			continue
		}

		matches := re.FindAllStringIndex(p.text, -1)
		if len(matches) == 0 {
			out = append(out, p)
			continue
		}

		cursor := 0
		for _, m := range matches {
			if m[0] == m[1] {
				continue
			}
			if m[0] > cursor {
				out = append(out, gapPiece(p, cursor, m[0]))
			}
			charSpan := Span{Start: p.span.Start + m[0], End: p.span.Start + m[1]}
			b := newBlock(spec.Category, spec.Subtype, p.text[m[0]:m[1]],
				charSpan, idx.spanOf(charSpan), generic)
			out = append(out, piece{span: charSpan, block: b})
			cursor = m[1]
		}
		if cursor < len(p.text) {
			out = append(out, gapPiece(p, cursor, len(p.text)))
		}
	}
	return out, nil
}

func gapPiece(p piece, from, to int) piece {
	return piece{
		span: Span{Start: p.span.Start + from, End: p.span.Start + to},
		text: p.text[from:to],
	}
}

// sweep turns an unclaimed piece into a terminal block: Unknown for content,
// Spacer for blank runs a catalog without a Spacer spec left behind.
func sweep(p piece, idx *lineIndex) *Block {
	if strings.TrimSpace(p.text) == "" {
		return newBlock(pattern.CategorySpacer, SubtypeSpacer, p.text,
			p.span, idx.spanOf(p.span), false)
	}
	return newBlock(pattern.CategoryBlock, SubtypeUnknown, p.text,
		p.span, idx.spanOf(p.span), false)
}

// ApplySpec runs a single spec against text, bypassing full catalog
// traversal. It returns only the blocks the spec claimed, with positions in
// original document coordinates. Intended for very large inputs where one
// block type is wanted.
func ApplySpec(text string, spec *pattern.Spec) ([]*Block, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	re, err := spec.Compile()
	if err != nil {
		return nil, err
	}

	idx := newLineIndex(text)
	var blocks []*Block
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[0] == m[1] {
			continue
		}
		charSpan := Span{Start: m[0], End: m[1]}
		blocks = append(blocks, newBlock(spec.Category, spec.Subtype,
			text[m[0]:m[1]], charSpan, idx.spanOf(charSpan), false))
	}
	return blocks, nil
}
