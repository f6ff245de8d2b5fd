package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-composer/internal/shared/auth"
	"resume-composer/internal/shared/telemetry"
	"resume-composer/internal/shared/validation"
)

// TokenIssuer issues and refreshes JWT pairs.
type TokenIssuer interface {
	IssuePair(userID, username string) (auth.TokenPair, error)
	Refresh(refreshToken string) (string, error)
}

// ProfileInitializer creates the empty profile every account starts with.
type ProfileInitializer interface {
	Ensure(ctx context.Context, userID string) error
}

// Purger removes everything a user owns in one store.
type Purger interface {
	DeleteByUser(ctx context.Context, userID string) error
}

// PurgerFunc adapts a function to Purger.
type PurgerFunc func(ctx context.Context, userID string) error

func (f PurgerFunc) DeleteByUser(ctx context.Context, userID string) error {
	return f(ctx, userID)
}

// Service handles accounts and credentials.
type Service struct {
	Repo       Repo
	Tokens     TokenIssuer
	Profiles   ProfileInitializer
	Purgers    []Purger
	BcryptCost int

	validate *validator.Validate
}

func NewService(repo Repo, tokens TokenIssuer, profiles ProfileInitializer, bcryptCost int, purgers ...Purger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		Repo:       repo,
		Tokens:     tokens,
		Profiles:   profiles,
		Purgers:    purgers,
		BcryptCost: bcryptCost,
		validate:   validation.New(),
	}
}

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func fieldError(field string, err error) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: messages[err]}}
}

// Register creates an account and its empty profile.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := s.validate.Struct(in); err != nil {
		return User{}, &ValidationError{Fields: validation.Details(err)}
	}
	if in.Password != in.Password2 {
		return User{}, fieldError("password", ErrPasswordMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return User{}, fieldError("username", ErrUsernameTaken)
		case errors.Is(err, ErrEmailTaken):
			return User{}, fieldError("email", ErrEmailTaken)
		}
		return User{}, err
	}

	if s.Profiles != nil {
		if err := s.Profiles.Ensure(ctx, user.ID); err != nil {
			return User{}, fmt.Errorf("create profile: %w", err)
		}
	}

	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, in LoginInput) (auth.TokenPair, error) {
	if err := s.validate.Struct(in); err != nil {
		return auth.TokenPair{}, &ValidationError{Fields: validation.Details(err)}
	}
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.Tokens.IssuePair(user.ID, user.Username)
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, in RefreshInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", &ValidationError{Fields: validation.Details(err)}
	}
	access, err := s.Tokens.Refresh(in.Refresh)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	return access, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

// Delete removes the account and everything it owns.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		return err
	}
	for _, p := range s.Purgers {
		if err := p.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("purge user data: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	telemetry.Info("user.deleted", map[string]any{"user_id": userID})
	return nil
}
