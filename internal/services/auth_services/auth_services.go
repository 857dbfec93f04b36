package auth_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
	"github.com/lianjung1/kanban-app/internal/repository/auth_repository"
)

// Token lifetime matches the 30-day session cookie.
const tokenTTL = 30 * 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Users  *auth_repository.UserRepo
	secret []byte
}

func NewAuthService(users *auth_repository.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, secret: []byte(secret)}
}

func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (string, *auth_model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if fullName == "" || email == "" || password == "" {
		return "", nil, errors.New("full name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, errors.New("failed to hash password")
	}

	u := &auth_model.User{FullName: fullName, Email: email, Password: string(hash)}
	if err := s.Users.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *auth_model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user_id in token")
	}
	return userID, nil
}
