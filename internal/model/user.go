package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user record as stored in the
// `users` table. Group membership lives in the `user_groups` link
// table; capabilities are never stored on the user directly and are
// resolved through groups at authorization time.
//
// Fields:
//  ID           – UUID primary key of the user.
//  Username     – unique login name.
//  Email        – unique, normalized email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may authenticate.
//  IsStaff      – staff flag kept for administrative tooling.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
//  DeletedAt    – soft-delete timestamp (nil while the row is live).
type User struct {
	ID           uuid.UUID  // users.id
	Username     string     // users.username
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	IsActive     bool       // users.is_active
	IsStaff      bool       // users.is_staff
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	DeletedAt    *time.Time // users.deleted_at (nullable)
}

// Group represents a row in the `groups` table. A group bundles
// permissions; users gain capabilities only through the groups they
// belong to.
type Group struct {
	ID   uuid.UUID // groups.id
	Name string    // groups.name (unique, e.g. "administrator", "common")
}

// Permission represents a row in the `permissions` table. The
// codename is the capability string checked by the permission gate,
// e.g. "add_part" or "view_car_model".
type Permission struct {
	ID       uuid.UUID // permissions.id
	Codename string    // permissions.codename (unique)
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uuid.UUID  // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
