package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gigforge/gigmatch/internal/match"
	"github.com/gigforge/gigmatch/internal/types"
)

// handleEvaluateSkills scores every applicant of a gig against its required
// skills and returns them ranked by descending match score.
func (s *Server) handleEvaluateSkills(w http.ResponseWriter, r *http.Request) {
	gigID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid gig ID")
		return
	}

	gig, err := s.store.GetGig(r.Context(), gigID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if gig == nil {
		s.errorResponse(w, http.StatusNotFound, "Gig not found")
		return
	}

	applicants, err := s.store.ListUsersByIDs(r.Context(), gig.Applicants)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidates := make([]types.CandidateSkillSet, len(applicants))
	for i, a := range applicants {
		candidates[i] = types.CandidateSkillSet{CandidateID: a.ID, RawSkills: a.Skills}
	}

	results := s.engine.Evaluate(r.Context(), gig.SkillsRequired, candidates)
	match.Rank(results)

	// A gig with no applicants yields an empty list, not an error.
	evaluated := make([]types.EvaluatedApplicant, 0, len(results))
	byID := make(map[uuid.UUID]int, len(applicants))
	for i, a := range applicants {
		byID[a.ID] = i
	}
	for _, res := range results {
		a := applicants[byID[res.CandidateID]]
		evaluated = append(evaluated, types.EvaluatedApplicant{
			ID:            a.ID,
			Username:      a.Username,
			Email:         a.Email,
			Skills:        a.Skills,
			MatchedSkills: res.MatchedSkills,
			MatchScore:    res.MatchScore,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    evaluated,
	})
}
