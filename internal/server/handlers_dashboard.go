package server

import (
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/gigforge/gigmatch/internal/match"
	"github.com/gigforge/gigmatch/internal/server/middleware"
	"github.com/gigforge/gigmatch/internal/types"
)

// recommendedGigLimit caps the number of gigs the dashboard suggests.
const recommendedGigLimit = 5

// myApplicantsLimit caps the dashboard's application history.
const myApplicantsLimit = 10

// appliedGig is one entry in the caller's application history.
type appliedGig struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// handleSkillMatch returns the caller's market-coverage percentage: how
// much of the combined demand of all open gigs their skills cover. The
// pool keeps duplicates, so widely demanded skills count more.
func (s *Server) handleSkillMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	openGigs, err := s.store.ListOpenGigs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	var pool []string
	for _, gig := range openGigs {
		pool = append(pool, gig.RequiredSkillNames()...)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"percentage": match.Coverage(user.Skills, pool),
	})
}

// handleRecommendedGigs ranks all open gigs against the caller's skills
// and returns the top matches.
func (s *Server) handleRecommendedGigs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	openGigs, err := s.store.ListOpenGigs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidate := types.CandidateSkillSet{CandidateID: user.ID, RawSkills: user.Skills}
	recommended := make([]types.RecommendedGig, 0, len(openGigs))
	for _, gig := range openGigs {
		res := s.engine.EvaluateOne(gig.SkillsRequired, candidate)
		recommended = append(recommended, types.RecommendedGig{
			Gig:           gig,
			MatchedSkills: res.MatchedSkills,
			MatchScore:    res.MatchScore,
		})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].MatchScore > recommended[j].MatchScore
	})
	if len(recommended) > recommendedGigLimit {
		recommended = recommended[:recommendedGigLimit]
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"gigs":    recommended,
	})
}

// handleMyApplicants lists the gigs the caller has applied to or joined,
// newest first, with the caller's standing on each: Accepted once on the
// team, In Progress while still on the applicant list.
func (s *Server) handleMyApplicants(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gigs, err := s.store.ListGigsByApplicant(r.Context(), userID, myApplicantsLimit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	applied := make([]appliedGig, 0, len(gigs))
	for _, gig := range gigs {
		status := "In Progress"
		for _, member := range gig.Team {
			if member == userID {
				status = "Accepted"
				break
			}
		}
		applied = append(applied, appliedGig{
			ID:          gig.ID,
			Title:       gig.Title,
			Description: gig.Description,
			Status:      status,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"gigs":    applied,
	})
}

// handleDashboardStats returns the caller's posted/applied/completed counters.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posted, err := s.store.CountGigsByCreator(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	applications, err := s.store.CountApplications(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	completed, err := s.store.CountCompletedGigs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"postedGigs":   posted,
		"applications": applications,
		"completed":    completed,
	})
}
