package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"authgate/internal/common"
	"authgate/internal/common/security"
	"authgate/internal/domain/model"
	"authgate/internal/domain/repository"
)

// Registration and login failures surfaced verbatim to the client.
var (
	ErrInvalidUsername = common.Detail(common.ErrValidation, "Username must be between 3 and 50 characters")
	ErrInvalidEmail    = common.Detail(common.ErrValidation, "Invalid email address")
	ErrWeakPassword    = common.Detail(common.ErrValidation,
		"Password must be at least 8 characters long and contain uppercase, lowercase, digit, and special character")
	ErrUsernameTaken = common.Detail(common.ErrConflict, "Username already registered")
	ErrEmailTaken    = common.Detail(common.ErrConflict, "Email already registered")
	ErrCreateRace    = common.Detail(common.ErrConflict, "User creation failed due to database constraints")

	// One message for every authentication failure so callers cannot tell
	// which check missed.
	ErrIncorrectCredentials = common.Detail(common.ErrUnauthorized, "Incorrect username or password")
)

// UserService owns user identity records: registration with uniqueness
// enforcement, credential authentication, lookups, and activation state.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"` // Username or email
	Password string `json:"password"`
}

// Register validates input and the password strength policy before any
// storage interaction, checks username then email for conflicts (in that
// order, for deterministic messages), and persists a new active user. A
// uniqueness violation that races past the pre-checks still comes back as a
// conflict, the database constraint is the authoritative guard.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(username) < 3 || len(username) > 50 {
		return nil, ErrInvalidUsername
	}
	// Reject display-name forms like "Bob <bob@x.com>" so the stored
	// email is always the bare address.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if !security.IsStrongPassword(req.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, ErrCreateRace
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate resolves the identifier first as a username and, only on a
// miss, as an email. An unknown identifier, a wrong password, and a
// deactivated account all yield the same ErrIncorrectCredentials.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if errors.Is(err, common.ErrNotFound) {
		// Emails are stored lowercased, so the fallback lookup must
		// normalize the same way registration does.
		user, err = s.userRepo.FindByEmail(ctx, strings.ToLower(identifier))
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, ErrIncorrectCredentials
	}
	if !user.IsActive {
		return nil, ErrIncorrectCredentials
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

// SetActive flips the account's active flag and refreshes its update
// timestamp.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	return s.userRepo.UpdateActive(ctx, id, active)
}
