package service

import (
	"context"
	"errors"
	"time"

	"arb_backend/internal/auth"   // Password hashing and tokens
	"arb_backend/internal/domain" // Importing domain models
	"arb_backend/internal/store"  // Persistence interfaces
)

// AuthService implements registration and login
type AuthService struct {
	users     store.UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates an AuthService. A non-positive ttl falls back to the
// 60 minute default.
func NewAuthService(users store.UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 60 * time.Minute
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new user with a hashed password. Username and email
// collisions are reported separately so the caller can tell which field to fix.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	// Check if username already exists
	if _, err := s.users.ByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}
	// Check if email already exists
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}
	// Hash the password before saving
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent register slipped in between the checks and the insert;
		// the unique index rejected it. Re-read to report the right field.
		if errors.Is(err, store.ErrUserExists) {
			if _, uerr := s.users.ByUsername(ctx, username); uerr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed access token with the
// username as subject. Unknown usernames and wrong passwords produce the same
// error so callers cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(user.Username, s.jwtSecret, s.tokenTTL)
}

// UserByUsername resolves a token subject back to its user record
func (s *AuthService) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
