// Package auth implements the identity collaborator: account registration
// and authentication, plus the session tokens the API hands out. The
// aggregation core only ever sees the stable user key this package produces.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"finpro/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password too short (min 6 characters)")
	ErrEmptyUsername      = errors.New("empty username")
)

// User is the safe account view returned after authentication. It never
// carries credentials.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Key returns the stable key used to scope the transaction store.
func (u User) Key() string { return u.Username }

// Service performs registration and authentication against a UserStore.
type Service struct {
	users store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

// Register creates an account with a bcrypt password hash. A duplicate
// username is rejected, not overwritten.
func (s *Service) Register(ctx context.Context, username, name, password string) (User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" {
		return User{}, ErrEmptyUsername
	}
	if name == "" {
		name = username
	}
	if len(password) < 6 {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	err = s.users.CreateUser(ctx, store.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	})
	if errors.Is(err, store.ErrDuplicateUsername) {
		return User{}, ErrUsernameTaken
	}
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "component", "auth", "username", username)
	return User{Username: username, Name: name}, nil
}

// Authenticate verifies credentials and returns the safe user view. Unknown
// user and wrong password collapse into the same error so the response does
// not reveal which one failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.GetUser(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: u.Username, Name: u.Name}, nil
}
