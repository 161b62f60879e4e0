package model

import "time"

// Application roles. Clients search and book rooms; receptionists
// manage the room catalog, the reservation ledger and the
// dashboard. The role is carried in the JWT's "role" claim and
// checked by middleware before a handler runs.
const (
	RoleClient       = "CLIENT"
	RoleReceptionist = "RECEPTIONIST"
)

// User represents an application user record as stored in the
// `users` table. Only the bcrypt hash of the password is ever
// persisted; handlers compare plaintext against the hash and
// never store or log the plaintext.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name of the guest or staff member.
//  Email        – unique email address (login identifier).
//  PasswordHash – bcrypt hashed password.
//  Role         – CLIENT or RECEPTIONIST.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
