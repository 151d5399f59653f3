package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// newlineLookahead replaces a trailing end anchor in multi-line mode so it
// matches before every newline in the synthesized buffer.
const newlineLookahead = `(?=\n)`

// CompileOptions configures pattern compilation.
type CompileOptions struct {
	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool

	// MatchTimeout bounds a single match attempt. Zero disables it.
	MatchTimeout time.Duration
}

// Pattern is a compiled search pattern.
type Pattern struct {
	source      string
	multiline   bool
	endAnchored bool
	re          *regexp2.Regexp
}

// Compile compiles source. Errors wrap domain.ErrPatternCompile.
func Compile(source string, opts CompileOptions) (*Pattern, error) {
	p := &Pattern{
		source:      source,
		multiline:   IsMultiline(source),
		endAnchored: EndsWithAnchor(source),
	}

	expr := source
	var flags regexp2.RegexOptions
	if opts.IgnoreCase {
		flags |= regexp2.IgnoreCase
	}
	if p.multiline {
		flags |= regexp2.Multiline
		if p.endAnchored {
			expr = source[:len(source)-1] + newlineLookahead
		}
	}

	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrPatternCompile, source, err)
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}
	p.re = re
	return p, nil
}

// Source returns the pattern as supplied.
func (p *Pattern) Source() string {
	return p.source
}

// Expr returns the expression actually compiled.
func (p *Pattern) Expr() string {
	return p.re.String()
}

// Multiline reports whether the pattern is matched across line boundaries.
func (p *Pattern) Multiline() bool {
	return p.multiline
}

// EndAnchored reports whether the pattern ends with an unescaped "$".
func (p *Pattern) EndAnchored() bool {
	return p.endAnchored
}

// find returns the first match at or after rune offset start, or nil.
func (p *Pattern) find(text []rune, start int) (*regexp2.Match, error) {
	m, err := p.re.FindRunesMatchStartingAt(text, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMatchTimeout, err)
	}
	return m, nil
}

// IsMultiline reports whether source asks for newline-crossing matches:
// it contains the escape "\n" or a literal newline.
func IsMultiline(source string) bool {
	return strings.Contains(source, `\n`) || strings.Contains(source, "\n")
}

// EndsWithAnchor reports whether source ends with a "$" that is not escaped.
func EndsWithAnchor(source string) bool {
	if !strings.HasSuffix(source, "$") {
		return false
	}
	slashes := 0
	for i := len(source) - 2; i >= 0 && source[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}
