// Package signature implements the magic-number registry, the prefix matcher
// and the extension resolver that decide a file's true type.
package signature

import m "extfix.dev/pkg/extfix/internal/model"

// MaxPrefixLen is the number of leading bytes read from a file for
// classification. It covers the longest registered signature: the ISO-BMFF
// brand rules end at byte 12, so 32 leaves headroom for future rules.
const MaxPrefixLen = 32

// Mask byte values. A literal position must equal the pattern byte; a
// wildcard position matches anything, including bytes past a short file's end.
const (
	maskLiteral  = 0xFF
	maskWildcard = 0x00
)

// Rule binds one byte pattern to a file type.
//
// Pattern and Mask have equal length; Mask[i] == maskWildcard makes
// Pattern[i] a don't-care byte. Offset shifts the whole pattern from the
// start of the file. Weight breaks ties between overlapping rules: the more
// constrained signature carries the higher weight.
type Rule struct {
	Type    m.FileType
	Offset  int
	Pattern []byte
	Mask    []byte
	Weight  int
}

// literal builds a rule whose every pattern byte is significant.
func literal(t m.FileType, offset, weight int, pattern []byte) Rule {
	mask := make([]byte, len(pattern))
	for i := range mask {
		mask[i] = maskLiteral
	}

	return Rule{Type: t, Offset: offset, Pattern: pattern, Mask: mask, Weight: weight}
}

// LiteralLen returns the number of non-wildcard bytes in the pattern.
func (r Rule) LiteralLen() int {
	n := 0

	for _, b := range r.Mask {
		if b != maskWildcard {
			n++
		}
	}

	return n
}

// MatchLen is the number of prefix bytes the rule spans.
func (r Rule) MatchLen() int {
	return r.Offset + len(r.Pattern)
}

// Matches reports whether the rule matches the given file prefix. Literal
// bytes beyond the end of a short prefix fail the rule; wildcard bytes there
// do not.
func (r Rule) Matches(prefix []byte) bool {
	if len(r.Pattern) == 0 {
		return false
	}

	for i, want := range r.Pattern {
		if r.Mask[i] == maskWildcard {
			continue
		}

		pos := r.Offset + i
		if pos >= len(prefix) || prefix[pos] != want {
			return false
		}
	}

	return true
}
