package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// Ack is the fixed acknowledgement returned by operations that have no
// richer result, such as signout and a reset request.
type Ack struct {
	Message string `json:"message"`
}

// SessionService handles the credential lifecycle: signup, signin, signout
// and per-request authentication.
type SessionService interface {
	// Signup registers a new user and returns it along with a freshly
	// signed session token.
	Signup(ctx context.Context, email, password, name string) (*model.User, string, error)
	// Signin verifies credentials and returns the user and a session token.
	Signin(ctx context.Context, email, password string) (*model.User, string, error)
	// Signout acknowledges the end of a session. It is idempotent; the
	// actual cookie clearing is a transport concern.
	Signout() Ack
	// Authenticate resolves a session token into the user id it is bound
	// to. Callers treat the absence of a verified identity as anonymous.
	Authenticate(token string) (uuid.UUID, error)
	// CurrentUser loads the user record behind an authenticated identity.
	CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type sessionService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	issuer *auth.TokenIssuer
}

// NewSessionService creates a new session service.
func NewSessionService(users repository.UserRepository, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer) SessionService {
	return &sessionService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
	}
}

// NormalizeEmail lowercases an email address so lookups and writes always
// agree on the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *sessionService) Signup(ctx context.Context, email, password, name string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		Permissions:  model.Permissions{model.PermissionUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// the unique index is the authority; the pre-check only narrows the race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.Sign(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}
	return user, token, nil
}

func (s *sessionService) Signin(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issuer.Sign(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}
	return user, token, nil
}

func (s *sessionService) Signout() Ack {
	return Ack{Message: "Goodbye!"}
}

func (s *sessionService) Authenticate(token string) (uuid.UUID, error) {
	return s.issuer.Verify(token)
}

func (s *sessionService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
