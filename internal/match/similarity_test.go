package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSimilar(t *testing.T) {
	m := NewMatcher(DefaultSynonyms())

	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"exact after normalization", "Node.js", "nodejs", true},
		{"substring containment", "react", "reactjs", true},
		{"substring reversed", "reactjs", "react", true},
		{"synonym group", "js", "javascript", true},
		{"typo within threshold", "kubernetes", "kubernates", true}, // distance 1, threshold 3
		{"typo beyond threshold", "python", "pyhton", false},        // distance 2, threshold 1
		{"unrelated", "rust", "cooking", false},
		{"empty never matches nonempty", "", "react", false},
		{"both empty", "", "", true},
		{"accent within threshold", "café", "cafe", true}, // 1 rune edit, threshold 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.IsSimilar(tt.a, tt.b))
		})
	}
}

func TestIsSimilar_Reflexive(t *testing.T) {
	m := NewMatcher(DefaultSynonyms())
	for _, s := range []string{"react", "Node.js", "a", "some very long skill name"} {
		assert.True(t, m.IsSimilar(s, s), "isSimilar must be reflexive for %q", s)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"python", "pyhton", 2}, // transposition costs two single-char edits
		{"flaw", "lawn", 2},
		{"café", "cafe", 1}, // one rune substitution, regardless of byte width
		{"日本語", "日本", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshtein([]rune(tt.a), []rune(tt.b)))
			assert.Equal(t, tt.expected, levenshtein([]rune(tt.b), []rune(tt.a)))
		})
	}
}
