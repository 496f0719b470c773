package match

import "strings"

// editDistanceRatio is the fraction of the longer string's length tolerated
// as edits before two skills stop being similar.
const editDistanceRatio = 0.3

// Matcher decides whether two skill strings name the same skill. It holds
// the injected synonym table and nothing else; a Matcher is immutable and
// safe for concurrent use.
type Matcher struct {
	synonyms SynonymTable
}

// NewMatcher creates a Matcher backed by the given synonym table. The table
// must already have passed Validate; pass DefaultSynonyms() for the
// built-in one.
func NewMatcher(table SynonymTable) *Matcher {
	return &Matcher{synonyms: table}
}

// IsSimilar reports whether two raw skill strings should be treated as the
// same skill. The checks run in strict order and the first hit wins:
// normalized equality, substring containment in either direction, synonym
// group membership, then Levenshtein distance within 30% of the longer
// normalized form.
func (m *Matcher) IsSimilar(skillA, skillB string) bool {
	a := Normalize(skillA)
	b := Normalize(skillB)

	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	// Tolerates compound names like "react" vs "reactjs".
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if m.synonyms.AreSynonyms(a, b) {
		return true
	}

	// Distance and threshold count runes, not bytes, so accented or
	// non-Latin skill names are not penalized for their encoding width.
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	threshold := int(float64(maxLen) * editDistanceRatio)
	return levenshtein(ra, rb) <= threshold
}

// levenshtein computes the classic edit distance (insert, delete, and
// substitute each cost 1) between two already-normalized rune sequences,
// using a single-row DP table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = 1 + min3(prev[j], curr[j-1], prev[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
