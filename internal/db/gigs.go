package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gigforge/gigmatch/internal/types"
)

const gigColumns = `id, title, description, tags, skills_required, roles_required, created_by,
	 team, applicants, max_team_size, min_team_size, hackathon, project_type,
	 availability, github, figma, live_demo, status, created_at, updated_at`

func scanGig(row pgx.Row) (*types.Gig, error) {
	var g types.Gig
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Tags, &g.SkillsRequired,
		&g.RolesRequired, &g.CreatedBy, &g.Team, &g.Applicants, &g.MaxTeamSize,
		&g.MinTeamSize, &g.Hackathon, &g.ProjectType, &g.Availability,
		&g.GitHub, &g.Figma, &g.LiveDemo, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (db *DB) queryGigs(ctx context.Context, query string, args ...any) ([]types.Gig, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gigs: %w", err)
	}
	defer rows.Close()

	var gigs []types.Gig
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gig: %w", err)
		}
		gigs = append(gigs, *gig)
	}
	return gigs, rows.Err()
}

// CreateGig creates a new gig record and returns its ID. New gigs start Open.
func (db *DB) CreateGig(ctx context.Context, gig *types.Gig) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO gigs (title, description, tags, skills_required, roles_required,
		 created_by, max_team_size, min_team_size, hackathon, project_type,
		 availability, github, figma, live_demo, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'Open')
		 RETURNING id`,
		gig.Title, gig.Description, gig.Tags, gig.SkillsRequired, gig.RolesRequired,
		gig.CreatedBy, gig.MaxTeamSize, gig.MinTeamSize, gig.Hackathon,
		gig.ProjectType, gig.Availability, gig.GitHub, gig.Figma, gig.LiveDemo,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create gig: %w", err)
	}
	return id, nil
}

// GetGig retrieves a gig by ID. Returns nil without error when no gig exists.
func (db *DB) GetGig(ctx context.Context, gigID uuid.UUID) (*types.Gig, error) {
	gig, err := scanGig(db.pool.QueryRow(ctx,
		`SELECT `+gigColumns+` FROM gigs WHERE id = $1`, gigID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gig: %w", err)
	}
	return gig, nil
}

// ListGigs retrieves gigs, optionally filtered by status ("" matches all),
// most recent first.
func (db *DB) ListGigs(ctx context.Context, status types.GigStatus) ([]types.Gig, error) {
	if status == "" {
		return db.queryGigs(ctx,
			`SELECT `+gigColumns+` FROM gigs ORDER BY created_at DESC`)
	}
	return db.queryGigs(ctx,
		`SELECT `+gigColumns+` FROM gigs WHERE status = $1 ORDER BY created_at DESC`, status)
}

// ListOpenGigs retrieves all gigs currently accepting applicants.
func (db *DB) ListOpenGigs(ctx context.Context) ([]types.Gig, error) {
	return db.ListGigs(ctx, types.StatusOpen)
}

// ListGigsByCreator retrieves all gigs created by a user, most recent first.
func (db *DB) ListGigsByCreator(ctx context.Context, userID uuid.UUID) ([]types.Gig, error) {
	return db.queryGigs(ctx,
		`SELECT `+gigColumns+` FROM gigs WHERE created_by = $1 ORDER BY created_at DESC`, userID)
}

// ListGigsByApplicant retrieves gigs the user has applied to or joined
// the team of, most recent first, capped at limit.
func (db *DB) ListGigsByApplicant(ctx context.Context, userID uuid.UUID, limit int) ([]types.Gig, error) {
	return db.queryGigs(ctx,
		`SELECT `+gigColumns+` FROM gigs
		 WHERE $1 = ANY(applicants) OR $1 = ANY(team)
		 ORDER BY created_at DESC LIMIT $2`, userID, limit)
}

// UpdateGig updates a gig's editable fields.
func (db *DB) UpdateGig(ctx context.Context, gig *types.Gig) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE gigs SET title = $1, description = $2, tags = $3, skills_required = $4,
		 roles_required = $5, max_team_size = $6, min_team_size = $7, hackathon = $8,
		 project_type = $9, availability = $10, github = $11, figma = $12,
		 live_demo = $13, status = $14, updated_at = NOW()
		 WHERE id = $15`,
		gig.Title, gig.Description, gig.Tags, gig.SkillsRequired, gig.RolesRequired,
		gig.MaxTeamSize, gig.MinTeamSize, gig.Hackathon, gig.ProjectType,
		gig.Availability, gig.GitHub, gig.Figma, gig.LiveDemo, gig.Status, gig.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gig: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gig not found: %s", gig.ID)
	}
	return nil
}

// DeleteGig removes a gig record.
func (db *DB) DeleteGig(ctx context.Context, gigID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM gigs WHERE id = $1`, gigID)
	if err != nil {
		return fmt.Errorf("failed to delete gig: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gig not found: %s", gigID)
	}
	return nil
}

// AddApplicant records a user's application. Adding the same applicant
// twice is a no-op.
func (db *DB) AddApplicant(ctx context.Context, gigID, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE gigs SET applicants = array_append(applicants, $1), updated_at = NOW()
		 WHERE id = $2 AND NOT ($1 = ANY(applicants))`,
		userID, gigID,
	)
	if err != nil {
		return fmt.Errorf("failed to add applicant: %w", err)
	}
	_ = tag // zero rows affected means already applied or gig missing; caller checks the gig
	return nil
}

// AcceptApplicant moves a user from the applicant list onto the team.
func (db *DB) AcceptApplicant(ctx context.Context, gigID, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE gigs SET applicants = array_remove(applicants, $1),
		 team = array_append(team, $1), updated_at = NOW()
		 WHERE id = $2 AND $1 = ANY(applicants)`,
		userID, gigID,
	)
	if err != nil {
		return fmt.Errorf("failed to accept applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("applicant %s not found on gig %s", userID, gigID)
	}
	return nil
}

// RejectApplicant removes a user from the applicant list.
func (db *DB) RejectApplicant(ctx context.Context, gigID, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE gigs SET applicants = array_remove(applicants, $1), updated_at = NOW()
		 WHERE id = $2 AND $1 = ANY(applicants)`,
		userID, gigID,
	)
	if err != nil {
		return fmt.Errorf("failed to reject applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("applicant %s not found on gig %s", userID, gigID)
	}
	return nil
}

// CountGigsByCreator returns how many gigs a user has posted.
func (db *DB) CountGigsByCreator(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM gigs WHERE created_by = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posted gigs: %w", err)
	}
	return count, nil
}

// CountApplications returns how many gigs a user has applied to.
func (db *DB) CountApplications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM gigs WHERE $1 = ANY(applicants)`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// CountCompletedGigs returns how many completed gigs a user was on the team of.
func (db *DB) CountCompletedGigs(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM gigs WHERE $1 = ANY(team) AND status = 'Completed'`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed gigs: %w", err)
	}
	return count, nil
}
