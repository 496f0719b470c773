package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gigforge/gigmatch/internal/server/middleware"
	"github.com/gigforge/gigmatch/internal/types"
)

// ---------------------------------------------------------------------
// Gig Handlers
// ---------------------------------------------------------------------

// CreateGigRequest is the payload for creating or updating a gig.
type CreateGigRequest struct {
	Title          string                `json:"title" validate:"required,min=1"`
	Description    string                `json:"description" validate:"required,min=1"`
	Tags           []string              `json:"tags,omitempty"`
	SkillsRequired []types.RequiredSkill `json:"skillsRequired" validate:"required,min=1,dive"`
	RolesRequired  []types.Role          `json:"rolesRequired,omitempty"`
	MaxTeamSize    int                   `json:"maxTeamSize,omitempty"`
	MinTeamSize    int                   `json:"minTeamSize,omitempty"`
	Hackathon      *types.Hackathon      `json:"hackathon,omitempty"`
	ProjectType    string                `json:"projectType,omitempty" validate:"omitempty,oneof=Hackathon 'Side Project' Research"`
	Availability   *types.Availability   `json:"availability,omitempty"`
	GitHub         string                `json:"github,omitempty"`
	Figma          string                `json:"figma,omitempty"`
	LiveDemo       string                `json:"liveDemo,omitempty"`
	Status         types.GigStatus       `json:"status,omitempty" validate:"omitempty,oneof=Open 'In Progress' Completed Archived"`
}

func (req *CreateGigRequest) toGig(createdBy uuid.UUID) *types.Gig {
	skills := make([]types.RequiredSkill, len(req.SkillsRequired))
	for i, sk := range req.SkillsRequired {
		if sk.Weight == 0 {
			sk.Weight = 1
		}
		if sk.Level == "" {
			sk.Level = types.LevelBeginner
		}
		skills[i] = sk
	}
	return &types.Gig{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		SkillsRequired: skills,
		RolesRequired:  req.RolesRequired,
		CreatedBy:      createdBy,
		MaxTeamSize:    req.MaxTeamSize,
		MinTeamSize:    req.MinTeamSize,
		Hackathon:      req.Hackathon,
		ProjectType:    req.ProjectType,
		Availability:   req.Availability,
		GitHub:         req.GitHub,
		Figma:          req.Figma,
		LiveDemo:       req.LiveDemo,
		Status:         req.Status,
	}
}

func (s *Server) handleCreateGig(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id, err := s.store.CreateGig(r.Context(), req.toGig(userID))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetGig(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, gig)
}

func (s *Server) handleListGigs(w http.ResponseWriter, r *http.Request) {
	status := types.GigStatus(r.URL.Query().Get("status"))
	gigs, err := s.store.ListGigs(r.Context(), status)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if gigs == nil {
		gigs = []types.Gig{}
	}
	s.jsonResponse(w, http.StatusOK, gigs)
}

func (s *Server) handleListMyGigs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	gigs, err := s.store.ListGigsByCreator(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if gigs == nil {
		gigs = []types.Gig{}
	}
	s.jsonResponse(w, http.StatusOK, gigs)
}

func (s *Server) handleUpdateGig(w http.ResponseWriter, r *http.Request) {
	gig, ok := s.ownedGig(w, r)
	if !ok {
		return
	}

	var req CreateGigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated := req.toGig(gig.CreatedBy)
	updated.ID = gig.ID
	if updated.Status == "" {
		updated.Status = gig.Status
	}

	if err := s.store.UpdateGig(r.Context(), updated); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteGig(w http.ResponseWriter, r *http.Request) {
	gig, ok := s.ownedGig(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteGig(r.Context(), gig.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

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
	if !gig.IsOpen() {
		s.errorResponse(w, http.StatusConflict, "Gig is not accepting applications")
		return
	}

	if err := s.store.AddApplicant(r.Context(), gigID, userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "applied"})
}

// applicantActionRequest names the applicant an accept/reject acts on.
type applicantActionRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id"`
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.applicantAction(w, r, s.store.AcceptApplicant, "accepted")
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.applicantAction(w, r, s.store.RejectApplicant, "rejected")
}

func (s *Server) applicantAction(w http.ResponseWriter, r *http.Request,
	action func(ctx context.Context, gigID, userID uuid.UUID) error, status string) {
	gig, ok := s.ownedGig(w, r)
	if !ok {
		return
	}

	var req applicantActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ApplicantID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "applicant_id is required")
		return
	}

	if err := action(r.Context(), gig.ID, req.ApplicantID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": status})
}

// ownedGig loads the gig from the path and verifies the caller created it.
// On failure it writes the response and returns ok=false.
func (s *Server) ownedGig(w http.ResponseWriter, r *http.Request) (*types.Gig, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	gigID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid gig ID")
		return nil, false
	}

	gig, err := s.store.GetGig(r.Context(), gigID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if gig == nil {
		s.errorResponse(w, http.StatusNotFound, "Gig not found")
		return nil, false
	}
	if gig.CreatedBy != userID {
		s.errorResponse(w, http.StatusForbidden, (&ErrNotGigOwner{}).Error())
		return nil, false
	}
	return gig, true
}
