// Package match decides which catalog records satisfy a compiled facet
// filter and text queries.
package match

import (
	"strings"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/facet"
)

// Query holds the free-text part of a search. An empty string disables the
// corresponding check. Invert turns a "contains" check into "does not
// contain".
type Query struct {
	Name       string
	Lore       string
	InvertName bool
	InvertLore bool
}

// LineReader fetches a record's description line.
type LineReader interface {
	Line(rec catalog.Record) (string, error)
}

// Matcher is a filter and query prepared for repeated evaluation.
type Matcher struct {
	filter facet.Filter
	query  Query

	name        string
	lore        string
	hasRequired bool
	hasExcluded bool
}

func NewMatcher(f facet.Filter, q Query) *Matcher {
	return &Matcher{
		filter:      f,
		query:       q,
		name:        strings.ToLower(q.Name),
		lore:        strings.ToLower(q.Lore),
		hasRequired: !f.Required.IsEmpty(),
		hasExcluded: !f.Excluded.IsEmpty(),
	}
}

// MatchBits applies only the facet part of the filter.
func (m *Matcher) MatchBits(bits facet.Bitset) bool {
	if m.hasRequired && !bits.All(m.filter.Required) {
		return false
	}
	if m.hasExcluded && !bits.None(m.filter.Excluded) {
		return false
	}
	for _, g := range m.filter.Alternates {
		if !bits.Any(g) {
			return false
		}
	}
	return true
}

// Match reports whether rec passes. Description lines are read through
// lines only when a lore query is set and the cheaper checks passed.
func (m *Matcher) Match(rec catalog.Record, lines LineReader) (bool, error) {
	if !m.MatchBits(rec.Bits) {
		return false, nil
	}
	if m.name != "" {
		found := strings.Contains(strings.ToLower(rec.Name), m.name)
		if found == m.query.InvertName {
			return false, nil
		}
	}
	if m.lore != "" {
		line, err := lines.Line(rec)
		if err != nil {
			return false, err
		}
		found := strings.Contains(strings.ToLower(line), m.lore)
		if found == m.query.InvertLore {
			return false, nil
		}
	}
	return true, nil
}

// Matches evaluates a single record.
func Matches(rec catalog.Record, f facet.Filter, q Query, lines LineReader) (bool, error) {
	return NewMatcher(f, q).Match(rec, lines)
}
