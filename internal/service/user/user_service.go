package user

import (
	"context"
	"errors"

	"github.com/dinerozz/datahive-backend/internal/model/request"
	"github.com/dinerozz/datahive-backend/internal/model/response"
	"github.com/dinerozz/datahive-backend/internal/repository"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoPassword      = errors.New("user doesn't have a password")
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetUserById(ctx context.Context, userID uuid.UUID) (response.User, error) {
	return s.Repo.GetUserById(ctx, userID)
}

// CreateOrAuthenticate logs an existing user in or registers a new one.
func (s *UserService) CreateOrAuthenticate(ctx context.Context, req request.CreateUserWithPassword) (response.User, error) {
	existing, err := s.Repo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		if existing.Password == nil {
			return response.User{}, ErrNoPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*existing.Password), []byte(req.Password)); err != nil {
			return response.User{}, ErrInvalidPassword
		}
		existing.Password = nil
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return response.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.User{}, err
	}
	req.Password = string(hashedPassword)

	return s.Repo.CreateUserWithPassword(ctx, &req)
}
