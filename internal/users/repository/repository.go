// Package repository provides persistence for user records.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opCreate        = "users.repository.create"
	opGetByID       = "users.repository.get_by_id"
	opGetByEmail    = "users.repository.get_by_email"
	opListDesigners = "users.repository.list_designers"
	opUpdateProfile = "users.repository.update_profile"
	opReplaceQuiz   = "users.repository.replace_quiz"
	opMergeQuiz     = "users.repository.merge_quiz"
	opSetPassword   = "users.repository.set_password"

	uniqueViolation = "23505"
)

// User is a full user record. Password hash never leaves the auth
// service; transport projections strip it.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	ContactNo      *string
	PasswordHash   string
	Role           string
	ProfilePic     *string
	Bio            *string
	Specialization *string
	Experience     *int
	IsVerified     bool
	Availability   bool
	PreferredTones []string
	Approach       string
	StyleQuiz      map[string]string
	LastActive     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateParams holds the fields required to insert a user.
type CreateParams struct {
	FullName     string
	Email        string
	ContactNo    *string
	PasswordHash string
	Role         string
}

// UpdateProfileParams holds optional profile fields; nil means unchanged.
type UpdateProfileParams struct {
	FullName       *string
	ContactNo      *string
	ProfilePic     *string
	Bio            *string
	Specialization *string
	Experience     *int
	Availability   *bool
	PreferredTones []string
	Approach       *string
}

// Repository provides access to the users table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a users repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `
	id, full_name, email, contact_no, password_hash, role, profile_pic, bio,
	specialization, experience, is_verified, availability, preferred_tones,
	approach, style_quiz, last_active, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.ContactNo, &u.PasswordHash, &u.Role,
		&u.ProfilePic, &u.Bio, &u.Specialization, &u.Experience, &u.IsVerified,
		&u.Availability, &u.PreferredTones, &u.Approach, &u.StyleQuiz,
		&u.LastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create inserts a new user. A duplicate email maps to Conflict.
func (r *Repository) Create(ctx context.Context, p CreateParams) (User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, email, contact_no, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING`+userColumns,
		p.FullName, p.Email, p.ContactNo, p.PasswordHash, p.Role)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("an account with this email already exists").WithOp(opCreate)
		}
		return User{}, apperr.Wrap(apperr.KindInternal, "create user failed", err).WithOp(opCreate)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found").WithOp(opGetByID)
		}
		return User{}, apperr.Wrap(apperr.KindInternal, "get user failed", err).WithOp(opGetByID)
	}
	return u, nil
}

// GetByEmail fetches a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found").WithOp(opGetByEmail)
		}
		return User{}, apperr.Wrap(apperr.KindInternal, "get user by email failed", err).WithOp(opGetByEmail)
	}
	return u, nil
}

// ListDesigners returns all designer accounts in insertion order.
// The stable retrieval order matters to the match engine's tie-breaking.
func (r *Repository) ListDesigners(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+userColumns+` FROM users WHERE role = 'designer' ORDER BY created_at, id`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list designers failed", err).WithOp(opListDesigners)
	}
	defer rows.Close()

	var designers []User
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan designer failed", scanErr).WithOp(opListDesigners)
		}
		designers = append(designers, u)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "iterate designers failed", rowsErr).WithOp(opListDesigners)
	}
	return designers, nil
}

// UpdateProfile applies the non-nil fields and returns the updated user.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, p UpdateProfileParams) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			full_name       = COALESCE($2, full_name),
			contact_no      = COALESCE($3, contact_no),
			profile_pic     = COALESCE($4, profile_pic),
			bio             = COALESCE($5, bio),
			specialization  = COALESCE($6, specialization),
			experience      = COALESCE($7, experience),
			availability    = COALESCE($8, availability),
			preferred_tones = COALESCE($9, preferred_tones),
			approach        = COALESCE($10, approach),
			updated_at      = now()
		WHERE id = $1
		RETURNING`+userColumns,
		id, p.FullName, p.ContactNo, p.ProfilePic, p.Bio, p.Specialization,
		p.Experience, p.Availability, p.PreferredTones, p.Approach)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found").WithOp(opUpdateProfile)
		}
		return User{}, apperr.Wrap(apperr.KindInternal, "update profile failed", err).WithOp(opUpdateProfile)
	}
	return u, nil
}

// ReplaceQuiz overwrites the stored quiz-answer map wholesale.
// Used by quiz submission.
func (r *Repository) ReplaceQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET style_quiz = $2, updated_at = now() WHERE id = $1
	`, id, answers)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "replace quiz failed", err).WithOp(opReplaceQuiz)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found").WithOp(opReplaceQuiz)
	}
	return nil
}

// MergeQuiz merges the given keys into the stored quiz-answer map.
// New keys extend the map, existing keys are overwritten; other keys
// are untouched. Used by quiz update.
func (r *Repository) MergeQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) (map[string]string, error) {
	var merged map[string]string
	err := r.pool.QueryRow(ctx, `
		UPDATE users SET style_quiz = style_quiz || $2, updated_at = now()
		WHERE id = $1
		RETURNING style_quiz
	`, id, answers).Scan(&merged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found").WithOp(opMergeQuiz)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "merge quiz failed", err).WithOp(opMergeQuiz)
	}
	return merged, nil
}

// SetPasswordHash replaces the stored password hash.
func (r *Repository) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id, hash)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "set password failed", err).WithOp(opSetPassword)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found").WithOp(opSetPassword)
	}
	return nil
}

// TouchLastActive bumps the user's last_active timestamp.
func (r *Repository) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_active = now() WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, fmt.Sprintf("touch last_active for %s failed", id), err)
	}
	return nil
}
