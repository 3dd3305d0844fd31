package user

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrDuplicateID     = errors.New("this id is already registered")
	ErrUserNotFound    = errors.New("user id not found")
	ErrInvalidPassword = errors.New("invalid password")
)

type Service interface {
	Register(ctx context.Context, userID, name, password, role string) error
	Verify(ctx context.Context, userID, password string) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register stores a new identity. The role is stored as given; route guards
// compare against the known role constants.
func (s *service) Register(ctx context.Context, userID, name, password, role string) error {
	_, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return ErrDuplicateID
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("check existing id: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		UserID:       userID,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Verify authenticates an id/password pair. An unknown id yields
// ErrUserNotFound; a known id with the wrong password yields
// ErrInvalidPassword.
func (s *service) Verify(ctx context.Context, userID, password string) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}
