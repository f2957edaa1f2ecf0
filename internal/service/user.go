package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/libraryhub/library-service/internal/auth"
	"github.com/libraryhub/library-service/internal/domain"
)

func (s *Service) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("fetch user: %w", err)
	}

	if !user.IsActive || !auth.VerifyPassword(password, user.HashedPassword) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
