package search

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"
)

// TitleFilter selects items whose title fuzzy-matches a query.
// Matching is case-insensitive and ignores diacritics, so "kimetsu" matches
// "Kimetsu no Yaiba" and "pokemon" matches "Pokémon".
type TitleFilter struct {
	query string
}

// NewTitleFilter returns nil for an empty query; a nil filter matches everything
func NewTitleFilter(query string) *TitleFilter {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return &TitleFilter{query: query}
}

// Query returns the normalized query
func (f *TitleFilter) Query() string {
	if f == nil {
		return ""
	}
	return f.query
}

// Match reports whether every query character appears in title, in order
func (f *TitleFilter) Match(title string) bool {
	if f == nil {
		return true
	}
	return fuzzy.MatchNormalizedFold(f.query, title)
}

// Highlight returns the byte offsets in title of the characters matched by the query
func (f *TitleFilter) Highlight(title string) []int {
	if f == nil {
		return nil
	}
	lower, offsets := foldRunes(title)
	matches := sfuzzy.Find(lowerQuery(f.query), []string{lower})
	if len(matches) == 0 {
		return nil
	}

	indexes := make([]int, 0, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		indexes = append(indexes, offsets[idx])
	}
	return indexes
}

func lowerQuery(q string) string {
	lower, _ := foldRunes(q)
	return lower
}

// foldRunes lowercases s one rune at a time and maps every byte offset of
// the result back to the offset of the same rune in s. strings.ToLower may
// change the rune count ("İ" becomes "i̇"), which would shift offsets.
func foldRunes(s string) (string, map[int]int) {
	var b strings.Builder
	offsets := make(map[int]int, len(s))
	for i, r := range s {
		offsets[b.Len()] = i
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String(), offsets
}
