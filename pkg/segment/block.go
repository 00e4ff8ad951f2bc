package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/chemsift/chemsift/pkg/pattern"
)

// SubtypeUnknown marks text no catalog spec claimed.
const SubtypeUnknown = "BlockUnknown"

// SubtypeSpacer marks runs of blank lines.
const SubtypeSpacer = "Spacer"

// Block is one carved piece of the source document. Blocks are immutable
// after segmentation and safe for concurrent reads; extraction results live
// in an external cache keyed by ID.
type Block struct {
	id       uuid.UUID
	category pattern.Category
	subtype  string
	raw      string
	charSpan Span
	lineSpan Span
	generic  bool
}

func newBlock(category pattern.Category, subtype, raw string, charSpan, lineSpan Span, generic bool) *Block {
	return &Block{
		id:       uuid.New(),
		category: category,
		subtype:  subtype,
		raw:      raw,
		charSpan: charSpan,
		lineSpan: lineSpan,
		generic:  generic,
	}
}

// ID returns the block's unique identifier.
func (b *Block) ID() uuid.UUID { return b.id }

// Category returns the block's pattern category.
func (b *Block) Category() pattern.Category { return b.category }

// Subtype returns the name of the spec that matched the block, or
// SubtypeUnknown for unclaimed text.
func (b *Block) Subtype() string { return b.subtype }

// Raw returns the block's exact source text.
func (b *Block) Raw() string { return b.raw }

// CharSpan returns the block's half-open byte range in the source document.
func (b *Block) CharSpan() Span { return b.charSpan }

// LineSpan returns the block's inclusive 1-based line range: the lines
// containing its first and last byte.
func (b *Block) LineSpan() Span { return b.lineSpan }

// Generic reports whether the block was claimed by a fallback spec rather
// than a specifically recognized one.
func (b *Block) Generic() bool { return b.generic }

// IsSpacer reports whether the block is a run of blank lines.
func (b *Block) IsSpacer() bool { return b.category == pattern.CategorySpacer }

// headerRe splits a marker-framed header from the body that follows it.
var headerRe = regexp.MustCompile(`(?s)^(([ \t]*[-*#=]{5,}[ \t]*\n)(.*?)(\n[ \t]*[-*#=]{5,}[ \t]*\n|$))`)

var (
	markerLineRe  = regexp.MustCompile(`^[ \t]*[-*#=]*[ \t]*$`)
	centralTextRe = regexp.MustCompile(`^[ \t]*[-*#=]?[ \t]*(.*?)[ \t]*[-*#=]?[ \t]*$`)
)

// ReadableName derives a short human-readable title for the block. Blocks
// with a marker-framed header use the header's text; anything else falls
// back to a cleaned prefix of the raw content.
func (b *Block) ReadableName() string {
	if b.IsSpacer() {
		return SubtypeSpacer
	}

	m := headerRe.FindStringSubmatch(b.raw)
	if m == nil {
		return processInvalidName(b.raw)
	}

	var parts []string
	for _, line := range strings.Split(m[1], "\n") {
		if markerLineRe.MatchString(line) {
			continue
		}
		cm := centralTextRe.FindStringSubmatch(line)
		if cm == nil {
			continue
		}
		if central := strings.TrimSpace(cm[1]); central != "" {
			parts = append(parts, central)
		}
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if len(name) < 2 {
		return processInvalidName(b.raw)
	}
	return name
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// processInvalidName builds a placeholder title from text with no usable
// header: letters and spaces only, collapsed and truncated.
func processInvalidName(s string) string {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}

	if !hasLetter {
		var b strings.Builder
		for _, r := range s {
			if !unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		cleaned := b.String()
		return "Unknown: " + truncate(cleaned, 21)
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(spaceRunRe.ReplaceAllString(b.String(), " "))
	return truncate(cleaned, 30)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], " ") + "..."
}
