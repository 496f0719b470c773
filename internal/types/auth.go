//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// RegisterRequest represents the request to create a new user account.
type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=1"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Skills   []string `json:"skills,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdateProfileRequest represents a profile update, used by onboarding and
// the profile editor. Nil pointer fields are left unchanged.
type UpdateProfileRequest struct {
	Username       *string  `json:"username,omitempty" validate:"omitempty,min=1"`
	ProfilePhoto   *string  `json:"profilePhoto,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Year           *int     `json:"year,omitempty"`
	College        *string  `json:"college,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	LinkedIn       *string  `json:"linkedin,omitempty"`
	GitHub         *string  `json:"github,omitempty"`
	PreferredRoles []string `json:"preferredRoles,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Availability   *string  `json:"availability,omitempty"`
	Onboarded      *bool    `json:"onboarded,omitempty"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
