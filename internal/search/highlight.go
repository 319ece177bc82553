package search

// Highlight returns the rune offsets of text that match query, in ascending
// order. An exact (case-insensitive) occurrence is highlighted as one
// contiguous span. Otherwise the text is walked left to right and every rune
// that advances through the separator-stripped query is marked; separators in
// the text are skipped without consuming a query rune. Highlight returns nil
// when query is empty or does not match.
func Highlight(text, query string) []int {
	if query == "" || text == "" {
		return nil
	}
	p := prepare(query)
	lower := lowerRunes(text)

	if idx := indexRunes(lower, p.lower); idx >= 0 {
		out := make([]int, len(p.lower))
		for i := range out {
			out[i] = idx + i
		}
		return out
	}

	if len(p.stripped) == 0 {
		return nil
	}
	out := make([]int, 0, len(p.stripped))
	qi := 0
	for i, r := range lower {
		if qi == len(p.stripped) {
			break
		}
		if isSeparator(r) {
			continue
		}
		if r == p.stripped[qi] {
			out = append(out, i)
			qi++
		}
	}
	if qi < len(p.stripped) {
		return nil
	}
	return out
}
