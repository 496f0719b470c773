package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User represents a stored user record, including the password hash. The
// hash never leaves this package boundary; handlers convert to the API
// shape before responding.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	ProfilePhoto   string     `json:"profile_photo,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
	Year           int        `json:"year,omitempty"`
	College        string     `json:"college,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	LinkedIn       string     `json:"linkedin,omitempty"`
	GitHub         string     `json:"github,omitempty"`
	PreferredRoles []string   `json:"preferred_roles,omitempty"`
	Interests      []string   `json:"interests,omitempty"`
	Location       string     `json:"location,omitempty"`
	Availability   string     `json:"availability,omitempty"`
	Onboarded      bool       `json:"onboarded"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

const userColumns = `id, username, email, password_hash, profile_photo, skills, year, college,
	 bio, linkedin, github, preferred_roles, interests, location, availability,
	 onboarded, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfilePhoto,
		&u.Skills, &u.Year, &u.College, &u.Bio, &u.LinkedIn, &u.GitHub,
		&u.PreferredRoles, &u.Interests, &u.Location, &u.Availability,
		&u.Onboarded, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a new user record and returns its ID
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string, skills []string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, skills)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		username, email, passwordHash, skills,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil without error when no user exists.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil without error when no user exists.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsersByIDs retrieves the users whose IDs appear in ids. Missing IDs
// are silently skipped; the result order follows the database, not ids.
func (db *DB) ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListUsers retrieves all user records.
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's profile fields (everything except email and
// password hash).
func (db *DB) UpdateUser(ctx context.Context, user *User) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET username = $1, profile_photo = $2, skills = $3, year = $4,
		 college = $5, bio = $6, linkedin = $7, github = $8, preferred_roles = $9,
		 interests = $10, location = $11, availability = $12, onboarded = $13,
		 updated_at = NOW()
		 WHERE id = $14`,
		user.Username, user.ProfilePhoto, user.Skills, user.Year, user.College,
		user.Bio, user.LinkedIn, user.GitHub, user.PreferredRoles, user.Interests,
		user.Location, user.Availability, user.Onboarded, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", user.ID)
	}
	return nil
}

// UpdateUserPassword replaces the stored password hash.
func (db *DB) UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// DeleteUser removes a user record.
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
