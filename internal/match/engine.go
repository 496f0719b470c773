package match

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gigforge/gigmatch/internal/types"
)

const (
	// parallelThreshold is the candidate-pool size above which evaluation
	// fans out across workers. Each candidate is independent, so this is
	// purely a throughput knob.
	parallelThreshold = 32
	maxWorkers        = 8
)

// Engine scores candidate skill sets against a gig's required skills.
type Engine struct {
	matcher *Matcher
}

// NewEngine creates an Engine using the given similarity matcher.
func NewEngine(matcher *Matcher) *Engine {
	return &Engine{matcher: matcher}
}

// Evaluate scores every candidate against the required skills and returns
// one MatchResult per candidate in input order. Candidates with no skills
// score 0 with an empty matched list; an empty required list yields 0 for
// everyone. Large pools are evaluated concurrently.
func (e *Engine) Evaluate(ctx context.Context, required []types.RequiredSkill, candidates []types.CandidateSkillSet) []types.MatchResult {
	results := make([]types.MatchResult, len(candidates))

	if len(candidates) < parallelThreshold {
		for i, c := range candidates {
			results[i] = e.EvaluateOne(required, c)
		}
		return results
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = e.EvaluateOne(required, c)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results
}

// EvaluateOne scores a single candidate against the required skills.
//
// The match score is the percentage of required skills for which the
// candidate has at least one similar skill. Counting required-skill
// coverage rather than matched candidate skills keeps the score capped at
// 100 even when a candidate lists near-duplicates (e.g. both "react" and
// "reactjs" against a single "react" requirement).
func (e *Engine) EvaluateOne(required []types.RequiredSkill, candidate types.CandidateSkillSet) types.MatchResult {
	result := types.MatchResult{
		CandidateID:   candidate.CandidateID,
		MatchedSkills: []string{},
	}

	candidateSkills := normalizeUnique(FlattenSkills(candidate.RawSkills))
	if len(required) == 0 || len(candidateSkills) == 0 {
		return result
	}

	requiredNorm := make([]string, len(required))
	for i, r := range required {
		requiredNorm[i] = Normalize(r.Name)
	}

	covered := make([]bool, len(required))
	for _, skill := range candidateSkills {
		matched := false
		for i, req := range requiredNorm {
			if e.matcher.IsSimilar(skill, req) {
				covered[i] = true
				matched = true
			}
		}
		if matched {
			result.MatchedSkills = append(result.MatchedSkills, skill)
		}
	}

	coveredCount := 0
	for _, c := range covered {
		if c {
			coveredCount++
		}
	}
	result.MatchScore = int(math.Round(100 * float64(coveredCount) / float64(len(required))))
	return result
}

// Rank sorts match results by descending score. The sort is stable, so ties
// keep their input order.
func Rank(results []types.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
}

// normalizeUnique normalizes every raw skill and drops empty strings and
// duplicates, preserving first-seen order.
func normalizeUnique(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		norm := Normalize(s)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
