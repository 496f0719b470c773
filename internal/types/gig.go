// Package types provides type definitions for structured data used throughout the gigmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel is the proficiency a gig expects for a required skill.
type SkillLevel string

// Valid skill levels.
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
)

// GigStatus is the lifecycle state of a gig.
type GigStatus string

// Valid gig statuses.
const (
	StatusOpen       GigStatus = "Open"
	StatusInProgress GigStatus = "In Progress"
	StatusCompleted  GigStatus = "Completed"
	StatusArchived   GigStatus = "Archived"
)

// RequiredSkill represents one skill a gig demands. Name is free text as
// entered by the gig creator; it is normalized at match time, not at rest.
type RequiredSkill struct {
	Name   string     `json:"name" validate:"required,min=1"`
	Level  SkillLevel `json:"level,omitempty"`
	Weight float64    `json:"weight,omitempty"` // importance for matching, defaults to 1
}

// Role represents a team slot a gig wants to fill.
type Role struct {
	RoleName       string     `json:"role_name"`
	FilledBy       *uuid.UUID `json:"filled_by,omitempty"`
	Count          int        `json:"count"`
	MustHaveSkills []string   `json:"must_have_skills,omitempty"`
}

// Availability describes the time commitment a gig expects.
type Availability struct {
	Days         []string `json:"days,omitempty"`
	HoursPerWeek int      `json:"hours_per_week,omitempty"`
	TimeZone     string   `json:"time_zone,omitempty"`
}

// Hackathon holds event details for hackathon-type gigs.
type Hackathon struct {
	Name      string     `json:"name,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Location  string     `json:"location,omitempty"`
}

// Gig represents a collaborative project looking for team members.
type Gig struct {
	ID             uuid.UUID       `json:"_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Tags           []string        `json:"tags,omitempty"`
	SkillsRequired []RequiredSkill `json:"skillsRequired"`
	RolesRequired  []Role          `json:"rolesRequired,omitempty"`
	CreatedBy      uuid.UUID       `json:"createdBy"`
	Team           []uuid.UUID     `json:"team,omitempty"`
	Applicants     []uuid.UUID     `json:"applicants,omitempty"`
	MaxTeamSize    int             `json:"maxTeamSize,omitempty"`
	MinTeamSize    int             `json:"minTeamSize,omitempty"`
	Hackathon      *Hackathon      `json:"hackathon,omitempty"`
	ProjectType    string          `json:"projectType,omitempty"`
	Availability   *Availability   `json:"availability,omitempty"`
	GitHub         string          `json:"github,omitempty"`
	Figma          string          `json:"figma,omitempty"`
	LiveDemo       string          `json:"liveDemo,omitempty"`
	Status         GigStatus       `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// IsOpen reports whether the gig is accepting applicants.
func (g *Gig) IsOpen() bool {
	return g.Status == StatusOpen
}

// RequiredSkillNames returns the raw names of all required skills.
func (g *Gig) RequiredSkillNames() []string {
	names := make([]string, 0, len(g.SkillsRequired))
	for _, s := range g.SkillsRequired {
		names = append(names, s.Name)
	}
	return names
}
