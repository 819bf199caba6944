package domain

import (
	"context"
	"time"
)

// UserRole distinguishes the two sides of the marketplace.
// A seller and a buyer share the same entity shape; the role does not
// change identity semantics anywhere else in the system.
type UserRole string

const (
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
)

// UserStatus represents the lifecycle status of an account.
// Accounts are never hard-deleted.
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// User represents an account in the marketplace.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// DisplayName returns the user's public display name: first and last
// name joined by a single space.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// RegisterParams contains parameters for creating an account.
// Password is the plaintext password; hashing happens in the service.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      UserRole
}

// UserService provides business logic for accounts and sessions.
type UserService interface {
	// Register creates a new account with a hashed credential.
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Authenticate verifies email/password, rejects deactivated accounts,
	// and records the login timestamp on success.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// CreateSession creates a session for a user and returns its opaque token.
	CreateSession(ctx context.Context, userID int64) (string, error)

	// GetUserBySessionToken resolves a session token to its user.
	// Expired sessions resolve to ErrSessionExpired.
	GetUserBySessionToken(ctx context.Context, token string) (*User, error)

	// DeleteSession logs out a user by deleting their session.
	DeleteSession(ctx context.Context, token string) error
}

// User-specific errors.
var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserExists         = &Error{Code: ECONFLICT, Message: "Email address already registered"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrAccountDeactivated = &Error{Code: EFORBIDDEN, Message: "Your account has been deactivated. Please contact support."}
	ErrSessionExpired     = &Error{Code: EUNAUTHORIZED, Message: "Session has expired"}
	ErrUnauthenticated    = &Error{Code: EUNAUTHORIZED, Message: "Authentication required"}
)
