package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigforge/gigmatch/internal/db"
	"github.com/gigforge/gigmatch/internal/types"
)

// Store is the persistence boundary the handlers depend on. *db.DB is the
// production implementation; tests substitute an in-memory fake. Readers
// return nil (not an error) when a record does not exist.
type Store interface {
	// Gigs
	CreateGig(ctx context.Context, gig *types.Gig) (uuid.UUID, error)
	GetGig(ctx context.Context, gigID uuid.UUID) (*types.Gig, error)
	ListGigs(ctx context.Context, status types.GigStatus) ([]types.Gig, error)
	ListOpenGigs(ctx context.Context) ([]types.Gig, error)
	ListGigsByCreator(ctx context.Context, userID uuid.UUID) ([]types.Gig, error)
	ListGigsByApplicant(ctx context.Context, userID uuid.UUID, limit int) ([]types.Gig, error)
	UpdateGig(ctx context.Context, gig *types.Gig) error
	DeleteGig(ctx context.Context, gigID uuid.UUID) error
	AddApplicant(ctx context.Context, gigID, userID uuid.UUID) error
	AcceptApplicant(ctx context.Context, gigID, userID uuid.UUID) error
	RejectApplicant(ctx context.Context, gigID, userID uuid.UUID) error
	CountGigsByCreator(ctx context.Context, userID uuid.UUID) (int, error)
	CountApplications(ctx context.Context, userID uuid.UUID) (int, error)
	CountCompletedGigs(ctx context.Context, userID uuid.UUID) (int, error)

	// Users
	CreateUser(ctx context.Context, username, email, passwordHash string, skills []string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]db.User, error)
	UpdateUser(ctx context.Context, user *db.User) error
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	Close()
}

var _ Store = (*db.DB)(nil)
