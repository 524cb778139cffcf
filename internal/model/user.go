package model

import "time"

// Role values stored in users.role. Admin accounts are created by
// seeding or by another admin, never through registration.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User represents an application user record as stored in the
// `users` table. Accounts start unverified; an admin verifies them
// before the user may create content. Blocked accounts keep their
// rows but fail authentication checks.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Email           – unique email address.
//  PasswordHash    – bcrypt hashed password, never serialized.
//  FirstName       – given name shown in projections.
//  LastName        – family name shown in projections.
//  ProfileImageURL – optional avatar URL.
//  Role            – one of student, teacher, admin.
//  Grade           – optional school grade/class label.
//  Bio             – optional free-text bio.
//  Interests       – list of interest tags (stored as JSON).
//  Verified        – whether an admin approved this account.
//  Blocked         – whether the account has been blocked.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64    `json:"id"`                          // users.id
	Email           string    `json:"email"`                       // users.email
	PasswordHash    string    `json:"-"`                           // users.password_hash
	FirstName       string    `json:"first_name"`                  // users.first_name
	LastName        string    `json:"last_name"`                   // users.last_name
	ProfileImageURL *string   `json:"profile_image_url,omitempty"` // users.profile_image_url (nullable)
	Role            string    `json:"role"`                        // users.role
	Grade           *string   `json:"grade,omitempty"`             // users.grade (nullable)
	Bio             *string   `json:"bio,omitempty"`               // users.bio (nullable)
	Interests       []string  `json:"interests"`                   // users.interests (JSON array)
	Verified        bool      `json:"verified"`                    // users.verified
	Blocked         bool      `json:"blocked"`                     // users.blocked
	CreatedAt       time.Time `json:"created_at"`                  // users.created_at
	UpdatedAt       time.Time `json:"updated_at"`                  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The
// plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     `json:"id"`                   // refresh_tokens.id
	UserID    uint64     `json:"user_id"`              // refresh_tokens.user_id
	TokenHash string     `json:"-"`                    // refresh_tokens.token_hash
	ExpiresAt time.Time  `json:"expires_at"`           // refresh_tokens.expires_at
	RevokedAt *time.Time `json:"revoked_at,omitempty"` // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  `json:"created_at"`           // refresh_tokens.created_at
}
