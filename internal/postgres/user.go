package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tlind/bookmarket/internal/auth"
	"github.com/tlind/bookmarket/internal/domain"
)

// sessionTTL is how long a session stays valid after login.
const sessionTTL = 30 * 24 * time.Hour

// UserService implements domain.UserService using PostgreSQL.
type UserService struct {
	db DB
}

// Compile-time check that UserService implements domain.UserService.
var _ domain.UserService = (*UserService)(nil)

// NewUserService creates a new PostgreSQL-backed user service.
func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. The email uniqueness constraint maps to
// ErrUserExists.
func (s *UserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("user.register", "Password must be at least 8 characters long")
		}
		return nil, domain.Internal(err, "user.register", "failed to hash password")
	}

	user := domain.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Phone:        params.Phone,
		PasswordHash: hash,
		Role:         params.Role,
		Status:       domain.UserStatusActive,
	}

	const query = `
		INSERT INTO users (first_name, last_name, email, phone, password_hash, user_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, created_at`
	err = s.db.QueryRow(ctx, query,
		params.FirstName, params.LastName, params.Email, params.Phone, hash, string(params.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, domain.Internal(err, "user.register", "failed to insert user")
	}

	return &user, nil
}

// Authenticate verifies credentials, rejects deactivated accounts, and
// records the login timestamp. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "user.authenticate", "failed to look up user")
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "user.authenticate", "failed to verify password")
	}

	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrAccountDeactivated
	}

	now := time.Now()
	if _, err := s.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, now, user.ID); err != nil {
		return nil, domain.Internal(err, "user.authenticate", "failed to record login")
	}
	user.LastLogin = &now

	return user, nil
}

// CreateSession creates a session for a user and returns its opaque token.
func (s *UserService) CreateSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", domain.Internal(err, "session.create", "failed to generate session token")
	}

	const query = `INSERT INTO sessions (user_id, token, expires_at) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, userID, token, time.Now().Add(sessionTTL)); err != nil {
		return "", domain.Internal(err, "session.create", "failed to insert session")
	}

	return token, nil
}

// GetUserBySessionToken resolves a session token to its user.
func (s *UserService) GetUserBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	const query = `
		SELECT
			u.id, u.first_name, u.last_name, u.email, u.phone, u.password_hash,
			u.user_type, u.status, u.last_login, u.created_at,
			s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = $1`

	var (
		user      domain.User
		expiresAt time.Time
	)
	err := s.db.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.PasswordHash, &user.Role, &user.Status, &user.LastLogin,
		&user.CreatedAt, &expiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.Internal(err, "session.get", "failed to look up session")
	}

	if time.Now().After(expiresAt) {
		return nil, domain.ErrSessionExpired
	}

	return &user, nil
}

// DeleteSession logs out a user by deleting their session.
func (s *UserService) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return domain.Internal(err, "session.delete", "failed to delete session")
	}
	return nil
}

func (s *UserService) getUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, first_name, last_name, email, phone, password_hash, user_type, status, last_login, created_at
		FROM users
		WHERE email = $1`

	var user domain.User
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.PasswordHash, &user.Role, &user.Status, &user.LastLogin, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
