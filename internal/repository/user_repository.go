package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/utils"
)

const userColumns = `id, email, password_hash, first_name, last_name, profile_image_url,
	role, grade, bio, interests, verified, blocked, created_at, updated_at`

// UserRepo provides persistence for accounts and profiles.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. New accounts start
// unverified unless the caller says otherwise (seeding).
func (r *UserRepo) Create(ctx context.Context, email, password, firstName, lastName, role string, verified bool, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name, role, verified) VALUES (?,?,?,?,?,?)",
		email, hash, firstName, lastName, role, verified)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// List returns all users ordered by name. Password hashes are
// stripped from the returned values; projections built from this
// list are safe to serve publicly.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY first_name, last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = ""
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListIDs returns the IDs of every user. The notification fan-out
// uses this to enumerate its audience.
func (r *UserRepo) ListIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateProfile saves the self-editable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, firstName, lastName string, grade, bio *string, interests []string) error {
	interestsJSON, err := json.Marshal(interests)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=?, grade=?, bio=?, interests=? WHERE id=?",
		firstName, lastName, grade, bio, string(interestsJSON), id)
	return err
}

// SetVerified marks an account as approved (or not) by an admin.
func (r *UserRepo) SetVerified(ctx context.Context, id uint64, verified bool) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET verified=? WHERE id=?", verified, id)
	return err
}

// SetBlocked blocks or unblocks an account.
func (r *UserRepo) SetBlocked(ctx context.Context, id uint64, blocked bool) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET blocked=? WHERE id=?", blocked, id)
	return err
}

// UpdateRole changes an account's role.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...interface{}) error }

func scanUser(s scanner) (model.User, error) {
	var (
		u         model.User
		interests sql.NullString
	)
	err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.Grade, &u.Bio, &interests, &u.Verified, &u.Blocked,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	u.Interests = []string{}
	if interests.Valid && interests.String != "" {
		// Bad JSON in the column degrades to an empty list.
		_ = json.Unmarshal([]byte(interests.String), &u.Interests)
	}
	return u, nil
}
