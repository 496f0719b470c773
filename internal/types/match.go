//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// CandidateSkillSet holds one candidate's raw skill field for evaluation.
// RawSkills comes straight from storage and may contain comma-joined
// entries; the match engine flattens it before scoring.
type CandidateSkillSet struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	RawSkills   []string  `json:"raw_skills"`
}

// MatchResult is one candidate's score against a gig's required skills.
// MatchedSkills holds the candidate's normalized skills that were similar
// to at least one required skill; MatchScore is the percentage of required
// skills covered, 0-100.
type MatchResult struct {
	CandidateID   uuid.UUID `json:"candidate_id"`
	MatchedSkills []string  `json:"matchedSkills"`
	MatchScore    int       `json:"matchScore"`
}

// EvaluatedApplicant is the API response shape for a scored gig applicant.
type EvaluatedApplicant struct {
	ID            uuid.UUID `json:"_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Skills        []string  `json:"skills"`
	MatchedSkills []string  `json:"matchedSkills"`
	MatchScore    int       `json:"matchScore"`
}

// RecommendedGig is a gig ranked against the caller's own skills.
type RecommendedGig struct {
	Gig           Gig      `json:"gig"`
	MatchedSkills []string `json:"matchedSkills"`
	MatchScore    int      `json:"matchScore"`
}

// CoverageResult is the dashboard market-coverage statistic: the fraction
// of a user's skills found anywhere in the open-gig demand pool.
type CoverageResult struct {
	Percentage int `json:"percentage"`
}

// DashboardStats holds per-user gig counters for the dashboard.
type DashboardStats struct {
	PostedGigs   int `json:"postedGigs"`
	Applications int `json:"applications"`
	Completed    int `json:"completed"`
}
