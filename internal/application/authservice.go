package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/calebdraper/inkwell/internal/domain/model"
	"github.com/calebdraper/inkwell/internal/domain/port/driven"
)

// Sentinel errors returned by AuthService.
var (
	// ErrInvalidCredentials is the single failure surfaced for a bad login.
	// Unknown email and wrong password both collapse into it so the response
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession indicates an unknown or expired session token.
	ErrInvalidSession = errors.New("invalid session")
)

// AuthService handles signup, login, and the session lifecycle. Passwords
// are bcrypt-hashed on the way in and only ever compared one-way.
type AuthService struct {
	users      driven.UserStore
	sessions   driven.SessionStore
	sessionTTL time.Duration
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthService creates an AuthService. bcryptCost outside the range bcrypt
// accepts falls back to bcrypt.DefaultCost.
func NewAuthService(
	users driven.UserStore,
	sessions driven.SessionStore,
	sessionTTL time.Duration,
	bcryptCost int,
	logger *slog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// SignUp creates a new account with a hashed password and the default
// authority. Returns driven.ErrUserAlreadyExists for a duplicate email.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (model.User, error) {
	if email == "" {
		return model.User{}, &ValidationError{Field: "email"}
	}
	if password == "" {
		return model.User{}, &ValidationError{Field: "password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: string(hash),
		Authorities:  []string{model.DefaultAuthority},
	})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("user registered", "email", user.Email)
	return user, nil
}

// Login authenticates the email/password pair and, on success, issues a new
// session. Both lookup and verification failures return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	user, err := s.loadCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, driven.ErrUserNotFound) {
			s.logger.Info("login failed", "reason", "unknown email")
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, err
	}

	if !verifyPassword(password, user.PasswordHash) {
		s.logger.Info("login failed", "reason", "password mismatch")
		return model.Session{}, ErrInvalidCredentials
	}

	session := model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("login succeeded", "user_id", user.ID, "authorities", user.Authorities)
	return session, nil
}

// ValidateSession resolves a session token. Unknown and expired tokens both
// return ErrInvalidSession; expired rows are removed on sight.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, ErrInvalidSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, driven.ErrSessionNotFound) {
			return model.Session{}, ErrInvalidSession
		}
		return model.Session{}, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Error("failed to delete expired session", "error", err)
		}
		return model.Session{}, ErrInvalidSession
	}

	return session, nil
}

// Logout invalidates the session token. The token is not reusable afterward.
// Logging out an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("session invalidated")
	return nil
}

// loadCredentials fetches the stored credential record for an email. The
// specific not-found error stays inside this package; Login translates it
// into the generic ErrInvalidCredentials before it reaches a client.
func (s *AuthService) loadCredentials(ctx context.Context, email string) (model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// verifyPassword compares a raw password against a stored bcrypt hash.
// The hash is never reversed; the raw password is never logged.
func verifyPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
