package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gigforge/gigmatch/internal/types"
)

func TestPrintRequiredSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequiredSkills([]types.RequiredSkill{
		{Name: "React", Level: types.LevelAdvanced},
		{Name: "Solidity"},
	})

	out := buf.String()
	assert.Contains(t, out, "SKILL REQUIREMENTS")
	assert.Contains(t, out, "React")
	assert.Contains(t, out, "Advanced")
	assert.Contains(t, out, "Solidity")
}

func TestPrintRequiredSkills_Truncation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	required := make([]types.RequiredSkill, 8)
	for i := range required {
		required[i] = types.RequiredSkill{Name: "Skill"}
	}
	p.PrintRequiredSkills(required)

	assert.Contains(t, buf.String(), "and 3 more")
}

func TestPrintRankedResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	first := uuid.New()
	p.PrintRankedResults([]types.MatchResult{
		{CandidateID: first, MatchedSkills: []string{"react", "node"}, MatchScore: 100},
		{CandidateID: uuid.New(), MatchScore: 0},
	})

	out := buf.String()
	assert.Contains(t, out, "RANKED CANDIDATES")
	assert.Contains(t, out, "Candidates evaluated: 2")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "Score: 100%")
	assert.Contains(t, out, "react, node")
	// Long IDs get truncated by the box, so only check the prefix
	assert.Contains(t, out, first.String()[:8])
}

func TestPrintRankedResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedResults(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBoxTruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
