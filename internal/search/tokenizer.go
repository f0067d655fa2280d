// Package search implements the free-text query side of the product search
// engine: query normalization/tokenization and relevance ranking.
//
// Matching is case-insensitive substring containment, not full-text or
// stemmed search. Known limitation: short tokens produce false positives
// and there is no stemming ("creams" does not match "cream").
package search

import "strings"

// minTermLen drops single-character noise tokens from queries.
const minTermLen = 2

// Query is a normalized free-text query: the whole lowercased string plus
// its individual terms of length >= 2.
type Query struct {
	Normalized string
	Terms      []string
}

// Tokenize normalizes a raw user query. A blank query yields an empty
// match set: callers must short-circuit to an empty result, never fall
// through to "all products".
func Tokenize(raw string) Query {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Query{}
	}

	var terms []string
	for _, t := range strings.Fields(normalized) {
		if len([]rune(t)) < minTermLen {
			continue
		}
		terms = append(terms, t)
	}

	return Query{Normalized: normalized, Terms: terms}
}

// Empty reports whether the query carries nothing to match on.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// Patterns returns every substring pattern in the disjunctive match set:
// the whole normalized query first, then each term. Each pattern is matched
// against product name, notification number and category.
func (q Query) Patterns() []string {
	if q.Empty() {
		return nil
	}
	patterns := make([]string, 0, len(q.Terms)+1)
	patterns = append(patterns, q.Normalized)
	for _, t := range q.Terms {
		if t == q.Normalized {
			continue
		}
		patterns = append(patterns, t)
	}
	return patterns
}
