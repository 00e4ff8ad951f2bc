// Package pattern provides the pattern catalog used to segment
// computational-chemistry log files: concrete regex specs, blueprints that
// stamp out families of related specs from one shared skeleton, and the
// ordered catalog tree that defines match priority.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is the high-level class of text a spec recognizes.
type Category string

const (
	// CategoryBlock marks a spec that recognizes a content-bearing block.
	CategoryBlock Category = "Block"

	// CategorySpacer marks a spec that recognizes runs of blank lines.
	// Spacer blocks never carry extractable data.
	CategorySpacer Category = "Spacer"
)

// Matching flags accepted in catalog configuration. They map onto RE2
// inline flags; UNICODE and VERBOSE from older pattern libraries have no
// RE2 equivalent and are rejected.
const (
	FlagMultiline  = "MULTILINE"
	FlagIgnoreCase = "IGNORECASE"
	FlagDotAll     = "DOTALL"
)

var flagLetters = map[string]string{
	FlagMultiline:  "m",
	FlagIgnoreCase: "i",
	FlagDotAll:     "s",
}

// Spec is one immutable block-matching rule: a category, a unique subtype
// name, a regular expression with at least one capturing group, matching
// flags, and a human comment. The pattern always matches whole lines, so it
// must be line-start anchored and must end at a line boundary.
type Spec struct {
	Category Category `yaml:"p_type" json:"p_type"`
	Subtype  string   `yaml:"p_subtype" json:"p_subtype"`
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Flags    []string `yaml:"flags" json:"flags"`
	Comment  string   `yaml:"comment,omitempty" json:"comment,omitempty"`

	compiled *regexp.Regexp
}

// flagPrefix converts the spec's flag names to an RE2 inline-flag group,
// e.g. ["MULTILINE","IGNORECASE"] -> "(?mi)".
func (s *Spec) flagPrefix() (string, error) {
	if len(s.Flags) == 0 {
		return "", nil
	}
	var letters strings.Builder
	for _, name := range s.Flags {
		letter, ok := flagLetters[strings.ToUpper(name)]
		if !ok {
			return "", fmt.Errorf("invalid flag %q", name)
		}
		letters.WriteString(letter)
	}
	return "(?" + letters.String() + ")", nil
}

// Compile returns the ready-to-use matcher built from pattern + flags.
// The compiled form is cached on first use.
func (s *Spec) Compile() (*regexp.Regexp, error) {
	if s.compiled != nil {
		return s.compiled, nil
	}
	prefix, err := s.flagPrefix()
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(prefix + s.Pattern)
	if err != nil {
		return nil, err
	}
	s.compiled = re
	return re, nil
}

// Validate checks the spec against the catalog contract: known category,
// non-empty subtype, a compilable line-anchored pattern with at least one
// capturing group that cannot match zero-length text.
func (s *Spec) Validate() error {
	return s.validate(s.Subtype)
}

func (s *Spec) validate(path string) error {
	switch s.Category {
	case CategoryBlock, CategorySpacer:
	case "":
		return configErrorf(path, nil, "missing p_type")
	default:
		return configErrorf(path, nil, "invalid p_type %q (want %q or %q)", s.Category, CategoryBlock, CategorySpacer)
	}
	if s.Subtype == "" {
		return configErrorf(path, nil, "missing p_subtype")
	}
	if s.Pattern == "" {
		return configErrorf(path, nil, "missing pattern")
	}
	re, err := s.Compile()
	if err != nil {
		return configErrorf(path, err, "pattern does not compile")
	}
	if re.NumSubexp() < 1 {
		return configErrorf(path, nil, "pattern needs at least one capturing group")
	}
	if !hasMultiline(s.Flags) {
		return configErrorf(path, nil, "pattern must carry the MULTILINE flag (whole-line matching)")
	}
	if !strings.HasPrefix(s.Pattern, "^") {
		return configErrorf(path, nil, "pattern must anchor at line start with ^")
	}
	if !endsAtLineBoundary(s.Pattern) {
		return configErrorf(path, nil, `pattern must end at a line boundary ($ or \n)`)
	}
	if re.MatchString("") {
		return configErrorf(path, nil, "pattern matches zero-length text")
	}
	return nil
}

func hasMultiline(flags []string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, FlagMultiline) {
			return true
		}
	}
	return false
}

// endsAtLineBoundary reports whether the pattern, ignoring trailing group
// closers and repetition operators, ends in a line-end anchor or a literal
// newline. This is a structural sanity check, not a full regex analysis.
func endsAtLineBoundary(p string) bool {
	trimmed := strings.TrimRight(p, ")?*+")
	return strings.HasSuffix(trimmed, `\n`) || strings.HasSuffix(trimmed, "$")
}

// Node methods.

func (s *Spec) appendSpecs(dst []*Spec) []*Spec { return append(dst, s) }

func (s *Spec) nodeLen() int { return 1 }

func (s *Spec) clone() Node {
	dup := *s
	return &dup
}

func (s *Spec) subtypes(dst []string) []string { return append(dst, s.Subtype) }

func (s *Spec) writeTree(b *strings.Builder, name string, depth int) {
	fmt.Fprintf(b, "%s%s: %s\n", strings.Repeat("  ", depth), name, s.String())
}

// String gives a short preview suitable for logs and the catalog tree view.
func (s *Spec) String() string {
	return fmt.Sprintf("Spec(%s/%s, pattern=%s, flags=%s)",
		s.Category, s.Subtype, preview(s.Pattern, 25), strings.Join(s.Flags, "|"))
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
