package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilFilterMatchesEverything(t *testing.T) {
	f := NewTitleFilter("   ")

	assert.Nil(t, f)
	assert.True(t, f.Match("Berserk"))
	assert.Nil(t, f.Highlight("Berserk"))
	assert.Equal(t, "", f.Query())
}

func TestTitleFilterMatch(t *testing.T) {
	f := NewTitleFilter("kimetsu")

	tests := []struct {
		title string
		want  bool
	}{
		{"Kimetsu no Yaiba", true},
		{"KIMETSU GAKUEN", true},
		{"Kingdom of Tsu", false},
		{"Berserk", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(tt.title))
		})
	}
}

func TestTitleFilterSubsequence(t *testing.T) {
	f := NewTitleFilter("opc")

	assert.True(t, f.Match("One Piece"))
	assert.False(t, f.Match("Piece One"))
}

func TestTitleFilterHighlight(t *testing.T) {
	f := NewTitleFilter("MST")

	assert.Equal(t, []int{0, 3, 4}, f.Highlight("Monster"))
	assert.Nil(t, f.Highlight("Berserk"))
}

func TestTitleFilterHighlightKeepsByteOffsets(t *testing.T) {
	// lowercasing "İ" to "i̇" adds a rune; offsets must still point into the original title
	assert.Equal(t, []int{2, 3}, NewTitleFilter("ka").Highlight("İka"))
	assert.Equal(t, []int{3, 5, 7}, NewTitleFilter("émn").Highlight("POKÉMON"))
}
