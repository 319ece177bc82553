// Package search ranks items against a typed query and computes which runes
// of a matched string to highlight.
package search

import (
	"sort"
	"unicode"
)

// Score bands. Every exact match scores below FuzzyBand, every contiguous
// fuzzy match below ScatterBand.
const (
	FuzzyBand   = 1000
	ScatterBand = 2000

	// boundaryPenalty is added to an exact match whose next rune is not a
	// word separator.
	boundaryPenalty = 0.5

	// RecencyWeight scales the original index into the adjusted score.
	RecencyWeight = 0.01
)

// Tier classifies how a query matched.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierFuzzy
	TierScattered
)

// Entry is one ranked item.
type Entry[T any] struct {
	Item  T
	Score float64
	// Index is the item's position in the unfiltered input.
	Index int

	tier Tier
	raw  float64
}

// Tier reports how the entry matched the query.
func (e Entry[T]) Tier() Tier {
	return e.tier
}

// Rank scores items against query and returns the matches best first.
// An empty query returns every item in input order with Score equal to its
// index. text projects an item to the string that is searched.
func Rank[T any](items []T, query string, text func(T) string) []Entry[T] {
	if query == "" {
		out := make([]Entry[T], len(items))
		for i, it := range items {
			out[i] = Entry[T]{Item: it, Score: float64(i), Index: i, tier: TierExact}
		}
		return out
	}

	q := prepare(query)
	out := make([]Entry[T], 0, len(items))
	for i, it := range items {
		tier, raw := q.score(text(it))
		if tier == TierNone {
			continue
		}
		out = append(out, Entry[T]{
			Item:  it,
			Score: raw + float64(i)*RecencyWeight,
			Index: i,
			tier:  tier,
			raw:   raw,
		})
	}

	// Ordering by (tier, raw, index) keeps the band guarantees for texts
	// longer than FuzzyBand runes and for lists where Index*RecencyWeight
	// would otherwise outweigh a position difference.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.raw != b.raw {
			return a.raw < b.raw
		}
		return a.Index < b.Index
	})
	return out
}

// scoreText returns the tier and raw (unadjusted) score of text against
// query. TierNone means no match.
func scoreText(text, query string) (Tier, float64) {
	if query == "" {
		return TierExact, 0
	}
	return prepare(query).score(text)
}

// pattern holds the lower-cased and separator-stripped forms of a search term.
type pattern struct {
	lower    []rune
	stripped []rune
}

func prepare(s string) pattern {
	lower := lowerRunes(s)
	return pattern{lower: lower, stripped: strip(lower)}
}

func (q pattern) score(text string) (Tier, float64) {
	lower := lowerRunes(text)

	if idx := indexRunes(lower, q.lower); idx >= 0 {
		score := float64(idx)
		next := idx + len(q.lower)
		if next < len(lower) && !isBoundary(lower[next]) {
			score += boundaryPenalty
		}
		return TierExact, score
	}

	if len(q.stripped) == 0 {
		return TierNone, 0
	}
	stripped := strip(lower)

	if idx := indexRunes(stripped, q.stripped); idx >= 0 {
		return TierFuzzy, float64(FuzzyBand + idx)
	}

	first, last, ok := subsequence(stripped, q.stripped)
	if !ok {
		return TierNone, 0
	}
	return TierScattered, float64(ScatterBand + first + (last - first))
}

// subsequence greedily matches every rune of needle in order within hay and
// returns the positions of the first and last matched runes.
func subsequence(hay, needle []rune) (first, last int, ok bool) {
	first = -1
	qi := 0
	for i, r := range hay {
		if qi == len(needle) {
			break
		}
		if r == needle[qi] {
			if first < 0 {
				first = i
			}
			last = i
			qi++
		}
	}
	return first, last, qi == len(needle)
}

// isBoundary reports whether r ends a word for exact-match scoring.
func isBoundary(r rune) bool {
	switch r {
	case ' ', '-', '_', ':', '/', '.':
		return true
	}
	return false
}

// isSeparator reports whether r is dropped before fuzzy matching.
func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '/', '.':
		return true
	}
	return unicode.IsSpace(r)
}

// lowerRunes lower-cases s rune by rune so offsets stay aligned with the
// original string.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func strip(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if !isSeparator(r) {
			out = append(out, r)
		}
	}
	return out
}

// indexRunes is strings.Index over rune slices, returning a rune offset.
func indexRunes(hay, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		match := true
		for j, r := range needle {
			if hay[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
