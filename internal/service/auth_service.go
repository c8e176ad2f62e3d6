package service

import (
	"context"
	"errors"

	"fieldforce/internal/lifecycle"
	"fieldforce/internal/model"
	"fieldforce/internal/repository"
	"fieldforce/internal/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, name, email, phoneNo, role, password string) (*model.User, error) {
	existing, err := s.userRepo.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, lifecycle.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already exists")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PhoneNo:      phoneNo,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.userRepo.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks user credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.ByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return util.GenerateJWT(u.ID, u.Role, s.jwtSecret)
}
