//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID             uuid.UUID `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePhoto   string    `json:"profilePhoto,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	Year           int       `json:"year,omitempty"`
	College        string    `json:"college,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	LinkedIn       string    `json:"linkedin,omitempty"`
	GitHub         string    `json:"github,omitempty"`
	PreferredRoles []string  `json:"preferredRoles,omitempty"`
	Interests      []string  `json:"interests,omitempty"`
	Location       string    `json:"location,omitempty"`
	Availability   string    `json:"availability,omitempty"`
	Onboarded      bool      `json:"onboarded"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
