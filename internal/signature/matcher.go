package signature

import (
	"sort"

	m "extfix.dev/pkg/extfix/internal/model"
)

// Matcher classifies file prefixes against a signature table.
type Matcher struct {
	table Table
}

// NewMatcher wraps the given table. The table is immutable, so a Matcher is
// safe for concurrent use.
func NewMatcher(table Table) Matcher {
	return Matcher{table: table}
}

// Classify returns the file type whose signature best matches the prefix.
//
// All matching rules are collected, then ordered by weight, literal byte
// count and registration index. The sort is stable, so equal rules keep
// their registration order and the result is deterministic. No match yields
// TypeUnknown.
func (mt Matcher) Classify(prefix []byte) m.FileType {
	matches := mt.table.LookupCandidates(prefix)
	if len(matches) == 0 {
		return m.TypeUnknown
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]

		if a.Rule.Weight != b.Rule.Weight {
			return a.Rule.Weight > b.Rule.Weight
		}

		if a.Rule.LiteralLen() != b.Rule.LiteralLen() {
			return a.Rule.LiteralLen() > b.Rule.LiteralLen()
		}

		return a.Index < b.Index
	})

	return matches[0].Rule.Type
}
