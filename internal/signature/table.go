package signature

import m "extfix.dev/pkg/extfix/internal/model"

// Table is an immutable, ordered set of signature rules. Registration order
// is the final tie-breaker during classification, so rules keep the index
// they were built with.
type Table struct {
	rules []Rule
}

// Match pairs a matching rule with its span and registration index.
type Match struct {
	Rule     Rule
	MatchLen int
	Index    int
}

// NewTable builds a table from the given rules. Rules whose pattern would
// reach past MaxPrefixLen are rejected at construction so classification can
// rely on a single fixed-size read.
func NewTable(rules []Rule) Table {
	for _, r := range rules {
		if r.MatchLen() > MaxPrefixLen {
			panic("signature: rule pattern exceeds MaxPrefixLen")
		}

		if len(r.Pattern) != len(r.Mask) {
			panic("signature: rule pattern and mask length differ")
		}
	}

	owned := make([]Rule, len(rules))
	copy(owned, rules)

	return Table{rules: owned}
}

// Rules returns a copy of the registered rules in registration order.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)

	return out
}

// LookupCandidates returns every rule matching the prefix, in registration
// order. Pure lookup: an empty prefix yields an empty result.
func (t Table) LookupCandidates(prefix []byte) []Match {
	var matches []Match

	for i, r := range t.rules {
		if r.Matches(prefix) {
			matches = append(matches, Match{Rule: r, MatchLen: r.MatchLen(), Index: i})
		}
	}

	return matches
}

// ftypRule matches an ISO-BMFF brand: "ftyp" at offset 4 followed by the
// four-byte brand at offset 8.
func ftypRule(t m.FileType, brand string) Rule {
	return literal(t, 4, 2, append([]byte("ftyp"), brand...))
}

// riffRule matches a RIFF container: "RIFF" at offset 0, a four-byte
// wildcard chunk size, then the four-byte form type at offset 8.
func riffRule(t m.FileType, form string) Rule {
	pattern := append([]byte("RIFF\x00\x00\x00\x00"), form...)
	mask := []byte{
		maskLiteral, maskLiteral, maskLiteral, maskLiteral,
		maskWildcard, maskWildcard, maskWildcard, maskWildcard,
		maskLiteral, maskLiteral, maskLiteral, maskLiteral,
	}

	return Rule{Type: t, Offset: 0, Pattern: pattern, Mask: mask, Weight: 2}
}

// DefaultTable returns the built-in signature registry. Container rules
// (RIFF, ISO-BMFF) carry a higher weight than the plain prefix rules so the
// more constrained signature wins when both happen to match.
func DefaultTable() Table {
	return NewTable([]Rule{
		literal(m.TypeGIF, 0, 1, []byte("GIF87a")),
		literal(m.TypeGIF, 0, 1, []byte("GIF89a")),
		literal(m.TypePNG, 0, 1, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}),
		literal(m.TypePDF, 0, 1, []byte("%PDF-")),
		literal(m.TypeOGG, 0, 1, []byte("OggS")),
		literal(m.TypeMKV, 0, 1, []byte{0x1A, 0x45, 0xDF, 0xA3}),
		literal(m.TypeFLAC, 0, 1, []byte("fLaC")),
		literal(m.TypeJPEG, 0, 1, []byte{0xFF, 0xD8, 0xFF}),
		literal(m.TypeMP3, 0, 1, []byte{0xFF, 0xFB}),
		literal(m.TypeMP3, 0, 1, []byte{0xFF, 0xF3}),
		literal(m.TypeMP3, 0, 1, []byte{0xFF, 0xF2}),
		literal(m.TypeMP3, 0, 1, []byte("ID3")),
		riffRule(m.TypeWEBP, "WEBP"),
		riffRule(m.TypeWAV, "WAVE"),
		ftypRule(m.TypeMOV, "qt  "),
		ftypRule(m.TypeMP4, "isom"),
		ftypRule(m.TypeMP4, "avc1"),
		ftypRule(m.TypeMP4, "mmp4"),
		ftypRule(m.TypeMP4, "mp41"),
		ftypRule(m.TypeMP4, "mp42"),
		ftypRule(m.TypeMP4, "mp71"),
		ftypRule(m.TypeMP4, "msnv"),
		ftypRule(m.TypeMP4, "M4V "),
		literal(m.TypeZIP, 0, 1, []byte{0x50, 0x4B, 0x03, 0x04}),
		literal(m.TypeGZIP, 0, 1, []byte{0x1F, 0x8B}),
	})
}
