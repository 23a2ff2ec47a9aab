// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, logout confirmation, and
// session token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/logging"
	"github.com/rentlyapp/rently/internal/server/auth"
	"github.com/rentlyapp/rently/internal/server/config"
	"github.com/rentlyapp/rently/internal/server/models"
	"github.com/rentlyapp/rently/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

// PublicProfile is the caller-visible slice of a user record. The password
// hash never leaves this package.
type PublicProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a session token
// - Logout: confirm session termination (the cookie is cleared by transport)
// - VerifyToken: turn a raw token into an authenticated identity
type AuthService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	logger                logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *AuthService {
	return &AuthService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		logger:                l.With("module", "auth_service"),
	}
}

// Register creates a new user with a freshly generated identifier and a
// bcrypt-hashed password, and returns the public profile.
//
// The existence pre-check is inherently racy: two concurrent registrations
// can both pass it. The users table's unique index is the authority; a lost
// race surfaces as common.ErrEmailInUse from the repository.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*PublicProfile, error) {
	if err := validateRegistration(email, name, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailInUse
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "register: user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "register: password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailInUse) {
			return nil, common.ErrEmailInUse
		}
		s.logger.Error(ctx, "register: user creation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &PublicProfile{ID: created.ID, Name: created.Name, Email: created.Email}, nil
}

// Login verifies the credentials and, on success, returns the authenticated
// identity together with a signed session token. The transport layer is
// responsible for attaching the token to the response cookie.
//
// A missing user and a wrong password both yield common.ErrInvalidCredentials
// so the caller cannot distinguish which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.Identity, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login: user lookup failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", common.ErrInvalidCredentials
	}

	identity := auth.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}

	token, err := auth.GenerateToken(identity, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "login: token signing failed", "error", err)
		return nil, "", common.ErrorInternal
	}

	return &identity, token, nil
}

// Logout returns the confirmation message. Sessions are stateless: the token
// is not revoked server-side and remains verifiable until natural expiry.
// Clearing the cookie is the transport layer's job.
func (s *AuthService) Logout() string {
	return "Logged out successfully"
}

// VerifyToken validates a raw token string and returns the embedded identity.
// An empty token fails immediately without invoking the token backend; any
// verification failure is reported as common.ErrorUnauthorized without
// leaking the underlying cause.
func (s *AuthService) VerifyToken(token string) (*auth.Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	identity, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	return identity, nil
}

// Profile returns the stored public profile of the authenticated user.
func (s *AuthService) Profile(ctx context.Context, userID string) (*PublicProfile, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "profile: user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &PublicProfile{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func validateRegistration(email, name, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return common.ErrValidation
	}
	if name == "" {
		return common.ErrValidation
	}
	if len(password) < minPasswordLength {
		return common.ErrValidation
	}
	return nil
}
