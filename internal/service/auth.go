package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/velmart/storefront/internal/events"
	"github.com/velmart/storefront/internal/hash"
	"github.com/velmart/storefront/internal/models"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/token"
	"github.com/velmart/storefront/internal/transport"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *token.Service
	Producer *events.Producer
}

// Register creates a regular user. The admin flag is never taken from the
// request, and e-mail uniqueness is case-insensitive.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	}

	_, err := s.Repo.UserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: passwordHash,
		City:         req.City,
		IsAdmin:      false,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.Producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return user, nil
}

// Login verifies the password and issues a bearer token carrying the
// user's admin flag as of this moment.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	raw, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.Producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return user, raw, nil
}

func (s *AuthService) User(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Users(ctx context.Context) ([]models.User, error) {
	return s.Repo.Users(ctx)
}
