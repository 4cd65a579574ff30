package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

// UserService handles account registration, login, and profile lookup.
type UserService struct {
	users *repository.UserRepository
	auth  *AuthService
	log   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
		log:   log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a new account. Emails are normalized to lowercase and
// must be unique.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:      req.FullName,
		Email:         email,
		Mobile:        req.Mobile,
		PasswordHash:  hash,
		Role:          model.UserRole(req.Role),
		StudentNumber: req.StudentNumber,
		Degree:        req.Degree,
		Department:    req.Department,
		University:    req.University,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("account registered")
	return user, nil
}

// Login verifies credentials and issues a JWT. Students get a single-session
// token; teachers may log in from several devices.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	var token string
	switch user.Role {
	case model.UserRoleStudent:
		token, err = s.auth.GenerateStudentToken(ctx, user.ID)
	default:
		token, err = s.auth.GenerateTeacherToken(user.ID)
	}
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile retrieves a user by id.
func (s *UserService) GetProfile(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	return user, nil
}
