// Package match implements the skill-matching and ranking engine: string
// normalization, synonym resolution, bounded edit-distance similarity, and
// per-candidate score aggregation.
package match

import "strings"

// Normalize canonicalizes a raw skill string for comparison: it lowercases
// the input and strips whitespace, dots, dashes, and underscores. Nothing
// else is removed; the function is total and idempotent.
func Normalize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch r {
		case ' ', '\t', '\n', '\r', '.', '-', '_':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FlattenSkills coerces a loosely shaped skill field into a flat list of raw
// tokens. Storage may hand back nil, a single string (possibly comma-joined,
// a legacy shape), a []string, or a []any with mixed entries; comma-joined
// values are split, tokens are trimmed, and empty or non-string entries are
// dropped.
func FlattenSkills(field any) []string {
	var raw []string
	switch v := field.(type) {
	case nil:
		return nil
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		// Non-string, non-list skill fields are treated as empty rather
		// than rejected.
		return nil
	}

	var out []string
	for _, entry := range raw {
		for _, token := range strings.Split(entry, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			out = append(out, token)
		}
	}
	return out
}
