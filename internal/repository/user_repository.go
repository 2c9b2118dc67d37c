package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dinerozz/datahive-backend/internal/model/request"
	"github.com/dinerozz/datahive-backend/internal/model/response"
	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserWithPassword expects an already hashed password.
func (r *UserRepository) CreateUserWithPassword(ctx context.Context, user *request.CreateUserWithPassword) (response.User, error) {
	userID, err := uuid.NewV4()
	if err != nil {
		return response.User{}, err
	}

	query := r.db.Rebind(`INSERT INTO users (id, username, password) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, userID, user.Username, user.Password); err != nil {
		return response.User{}, err
	}

	return response.User{
		ID:       userID,
		Username: user.Username,
	}, nil
}

func (r *UserRepository) GetUserById(ctx context.Context, userID uuid.UUID) (response.User, error) {
	query := r.db.Rebind(`SELECT id, username, created_at FROM users WHERE id = ?`)

	var user response.User
	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.User{}, ErrUserNotFound
		}
		return response.User{}, err
	}

	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (response.User, error) {
	query := r.db.Rebind(`SELECT id, username, password, created_at FROM users WHERE username = ?`)

	var user response.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.User{}, ErrUserNotFound
		}
		return response.User{}, err
	}

	return user, nil
}
