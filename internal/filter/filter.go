// Package filter ranks menu entries against the current query.
//
// Matching and scoring use the Sublime-style fuzzy matcher from
// github.com/sahilm/fuzzy, which rewards contiguous runs and word-boundary
// hits and penalizes unmatched length. This package owns the ordering rules
// on top of the raw scores: matches sort by score descending with base
// (configuration) order breaking ties, non-matches keep their base order
// after all matches, and an empty query is a no-op filter.
package filter

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/oakwood-commons/mx/internal/config"
)

// Span is a half-open byte range [Start, End) into an entry name that matched
// the query. Spans are non-overlapping and in order.
type Span struct {
	Start int
	End   int
}

// Ranked is an entry annotated with its rank for the current query.
type Ranked struct {
	Entry config.Entry

	// Base is the entry's index in configuration order.
	Base int

	// Matched reports whether the query is a subsequence of the entry name.
	// An empty query matches every entry.
	Matched bool

	// Score is the fuzzy match score; only meaningful when Matched is true
	// and the query is non-empty. Higher is better.
	Score int

	// Spans are the matched ranges within the entry name, for highlighting.
	Spans []Span
}

// Rank scores entries against query and returns them in display order.
// The result is deterministic for a given input. Base order is taken from the
// slice order of entries, which is the configuration order.
func Rank(entries []config.Entry, query string) []Ranked {
	if query == "" {
		// No-op filter: everything matches with a neutral score, base order
		// preserved exactly.
		out := make([]Ranked, len(entries))
		for i, e := range entries {
			out[i] = Ranked{Entry: e, Base: i, Matched: true}
		}
		return out
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	matched := make([]Ranked, 0, len(entries))
	seen := make(map[int]struct{}, len(entries))
	for _, m := range fuzzy.Find(query, names) {
		matched = append(matched, Ranked{
			Entry:   entries[m.Index],
			Base:    m.Index,
			Matched: true,
			Score:   m.Score,
			Spans:   spansFromIndexes(m.MatchedIndexes),
		})
		seen[m.Index] = struct{}{}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Score != matched[j].Score {
			return matched[i].Score > matched[j].Score
		}
		return matched[i].Base < matched[j].Base
	})

	// Non-matches rank after every match, in base order.
	for i, e := range entries {
		if _, ok := seen[i]; ok {
			continue
		}
		matched = append(matched, Ranked{Entry: e, Base: i})
	}
	return matched
}

// MatchCount returns how many ranked entries matched. Matches always precede
// non-matches, so this is also the length of the selectable prefix.
func MatchCount(ranked []Ranked) int {
	n := 0
	for _, r := range ranked {
		if !r.Matched {
			break
		}
		n++
	}
	return n
}

// spansFromIndexes folds the matcher's matched byte indexes into contiguous
// half-open ranges.
func spansFromIndexes(indexes []int) []Span {
	if len(indexes) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(indexes))
	cur := Span{Start: indexes[0], End: indexes[0] + 1}
	for _, i := range indexes[1:] {
		if i == cur.End {
			cur.End++
			continue
		}
		spans = append(spans, cur)
		cur = Span{Start: i, End: i + 1}
	}
	return append(spans, cur)
}
