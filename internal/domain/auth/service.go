package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type jwtService interface {
	GenerateToken(userID int64, isStaff bool) (string, error)
}

// ProfileCreator creates the default profile for a freshly registered user.
// Implemented by the profile module; registration and profile creation share
// one flow so a user never exists without a profile.
type ProfileCreator interface {
	CreateDefault(ctx context.Context, userID int64) error
}

type Service struct {
	users    Repository
	profiles ProfileCreator
	jwt      jwtService
}

func NewService(users Repository, profiles ProfileCreator, jwt jwtService) *Service {
	return &Service{users: users, profiles: profiles, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	if existing, _ := s.users.GetByUsername(ctx, req.Username); existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.profiles.CreateDefault(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.IsStaff)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: toPublic(user)}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// EmailByUserID returns the account email for a user id. Used by modules
// that notify users out-of-band without depending on the full user record.
func (s *Service) EmailByUserID(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
