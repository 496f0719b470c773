package match

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gigforge/gigmatch/internal/schemas"
)

//go:embed synonyms.schema.json
var synonymsSchema []byte

// SynonymTable maps a canonical skill key to its known aliases. The table is
// read-only configuration: it is validated once at load time and never
// mutated afterwards, so it is safe to share across requests.
type SynonymTable map[string][]string

// DefaultSynonyms returns the built-in alias table for common dev skills.
// Every alias is unique to one group so the table passes Validate; pairs
// like node/nodejs that used to ride along in several groups are covered by
// substring containment in the similarity check instead.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"javascript": {"js"},
		"typescript": {"ts"},
		"nextjs":     {"next", "next.js"},
		"react":      {"reactjs", "react.js"},
		"node":       {"node.js", "nodejs"},
		"mongodb":    {"mongo", "mongoose"},
		"postgresql": {"postgres"},
		"git":        {"github", "gitlab"},
		"docker":     {"containers"},
		"solidity":   {"smartcontracts", "evm"},
		"sql":        {"mysql", "sqlite"},
		"css":        {"tailwind", "tailwindcss", "scss"},
		"aws":        {"amazonwebservices", "ec2", "s3", "lambda"},
	}
}

// LoadSynonymsFile loads a synonym table override from a JSON file. The
// document is checked against the embedded schema before decoding, and the
// resulting table must pass Validate.
func LoadSynonymsFile(path string) (SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym table %s: %w", path, err)
	}

	if err := schemas.ValidateBytes(synonymsSchema, data); err != nil {
		return nil, fmt.Errorf("synonym table %s: %w", path, err)
	}

	var table SynonymTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse synonym table %s: %w", path, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("synonym table %s: %w", path, err)
	}
	return table, nil
}

// Validate checks the structural invariant the matcher relies on: once
// normalized, every alias belongs to at most one group. Without this check
// an ambiguous alias would be resolved by map iteration order, which is
// nondeterministic.
func (t SynonymTable) Validate() error {
	owner := make(map[string]string)
	for key, aliases := range t {
		normKey := Normalize(key)
		if normKey == "" {
			return fmt.Errorf("canonical key %q normalizes to empty", key)
		}
		if prev, taken := owner[normKey]; taken && prev != normKey {
			return fmt.Errorf("alias %q appears in groups %q and %q", normKey, prev, normKey)
		}
		owner[normKey] = normKey
		for _, alias := range aliases {
			normAlias := Normalize(alias)
			if normAlias == "" {
				return fmt.Errorf("alias %q in group %q normalizes to empty", alias, key)
			}
			if normAlias == normKey {
				continue
			}
			if prev, taken := owner[normAlias]; taken && prev != normKey {
				return fmt.Errorf("alias %q appears in groups %q and %q", normAlias, prev, normKey)
			}
			owner[normAlias] = normKey
		}
	}
	return nil
}

// AreSynonyms reports whether two raw skill strings belong to the same
// synonym group. Both inputs are normalized first; identical normalized
// forms are trivially synonyms.
func (t SynonymTable) AreSynonyms(a, b string) bool {
	normA := Normalize(a)
	normB := Normalize(b)

	if normA == normB {
		return true
	}

	for key, aliases := range t {
		if t.inGroup(key, aliases, normA) && t.inGroup(key, aliases, normB) {
			return true
		}
	}
	return false
}

// inGroup reports whether a normalized skill equals the group's canonical
// key or one of its normalized aliases.
func (t SynonymTable) inGroup(key string, aliases []string, norm string) bool {
	if norm == Normalize(key) {
		return true
	}
	for _, alias := range aliases {
		if norm == Normalize(alias) {
			return true
		}
	}
	return false
}
