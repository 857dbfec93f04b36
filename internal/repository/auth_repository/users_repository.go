package auth_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepo struct {
	DB *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) Create(ctx context.Context, u *auth_model.User) error {
	u.ID = uuid.New().String()

	q := `INSERT INTO users (id, full_name, email, password) VALUES ($1, $2, $3, $4)
	      RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, q, u.ID, u.FullName, u.Email, u.Password).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*auth_model.User, error) {
	var u auth_model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth_model.User, error) {
	var u auth_model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByFullName resolves a user by display name. Names are not unique; when
// several users share one, the oldest account wins.
func (r *UserRepo) GetByFullName(ctx context.Context, fullName string) (*auth_model.User, error) {
	var u auth_model.User
	q := `SELECT * FROM users WHERE full_name = $1 ORDER BY created_at LIMIT 1`
	err := r.DB.GetContext(ctx, &u, q, fullName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) AppendBoard(ctx context.Context, userID, boardID string) error {
	q := `UPDATE users SET boards = array_append(boards, $1), updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, q, boardID, userID)
	if err != nil {
		return fmt.Errorf("failed to append board to user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RemoveBoardFromAll drops the board reference from every user that carries
// it, the cleanup step of a board deletion.
func (r *UserRepo) RemoveBoardFromAll(ctx context.Context, boardID string) error {
	q := `UPDATE users SET boards = array_remove(boards, $1), updated_at = NOW() WHERE $1 = ANY(boards)`
	_, err := r.DB.ExecContext(ctx, q, boardID)
	if err != nil {
		return fmt.Errorf("failed to remove board from users: %w", err)
	}
	return nil
}
