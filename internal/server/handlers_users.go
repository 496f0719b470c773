package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/gigforge/gigmatch/internal/server/middleware"
	"github.com/gigforge/gigmatch/internal/types"
)

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	dbUsers, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	users := make([]*types.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, toAPIUser(&dbUsers[i]))
	}
	s.jsonResponse(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
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

	s.jsonResponse(w, http.StatusOK, toAPIUser(user))
}

// handleUpdateMe updates the caller's profile. Only fields present in the
// request change; this also serves the onboarding flow, which sets skills
// and flips Onboarded.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
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

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = *req.ProfilePhoto
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Year != nil {
		user.Year = *req.Year
	}
	if req.College != nil {
		user.College = *req.College
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.LinkedIn != nil {
		user.LinkedIn = *req.LinkedIn
	}
	if req.GitHub != nil {
		user.GitHub = *req.GitHub
	}
	if req.PreferredRoles != nil {
		user.PreferredRoles = req.PreferredRoles
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Availability != nil {
		user.Availability = *req.Availability
	}
	if req.Onboarded != nil {
		user.Onboarded = *req.Onboarded
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, toAPIUser(user))
}

// handleDeleteMe removes the caller's account.
func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
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

	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": true,
	})
}
