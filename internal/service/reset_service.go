package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/mail"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// ResetService runs the two-phase password recovery handshake.
type ResetService interface {
	// RequestReset issues a time-limited reset token for the account behind
	// email and mails a reset link. The token stays persisted even when
	// delivery fails, so support can resend it manually.
	RequestReset(ctx context.Context, email string) (Ack, error)
	// ResetPassword redeems a reset token: it replaces the password hash,
	// clears the token, and signs the user in by returning a fresh session
	// token alongside the updated user.
	ResetPassword(ctx context.Context, resetToken, password, confirmPassword string) (*model.User, string, error)
}

type resetService struct {
	users       repository.UserRepository
	hasher      *auth.PasswordHasher
	issuer      *auth.TokenIssuer
	mailer      mail.Mailer
	from        string
	frontendURL string
	now         func() time.Time
}

// NewResetService creates a new reset flow service.
func NewResetService(users repository.UserRepository, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer, mailer mail.Mailer, from, frontendURL string) ResetService {
	return &resetService{
		users:       users,
		hasher:      hasher,
		issuer:      issuer,
		mailer:      mailer,
		from:        from,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

func (s *resetService) RequestReset(ctx context.Context, email string) (Ack, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Ack{}, apperrors.ErrUserNotFound
		}
		return Ack{}, fmt.Errorf("find user: %w", err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return Ack{}, err
	}
	expiry := s.now().Add(auth.ResetTokenWindow)

	// overwrites any previous token; only the latest one stays valid
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return Ack{}, fmt.Errorf("store reset token: %w", err)
	}

	err = s.mailer.Send(ctx, mail.Message{
		From:    s.from,
		To:      user.Email,
		Subject: "Your Password Reset Token",
		HTML:    mail.ResetEmailHTML(s.frontendURL, token),
	})
	if err != nil {
		// the token is already persisted and stays valid; no rollback
		return Ack{}, err
	}

	return Ack{Message: "Thanks!"}, nil
}

func (s *resetService) ResetPassword(ctx context.Context, resetToken, password, confirmPassword string) (*model.User, string, error) {
	if password != confirmPassword {
		return nil, "", apperrors.ErrPasswordMismatch
	}

	user, err := s.users.FindByResetToken(ctx, resetToken, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrResetTokenInvalid
		}
		return nil, "", fmt.Errorf("find reset token: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	// hash replace and token clear happen in one write
	if err := s.users.ReplacePassword(ctx, user.ID, hashed); err != nil {
		return nil, "", fmt.Errorf("replace password: %w", err)
	}
	user.PasswordHash = hashed
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	// a successful reset doubles as a signin
	token, err := s.issuer.Sign(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}
	return user, token, nil
}
