package store

import (
	"context"
	"errors"

	"arb_backend/internal/domain" // Importing domain models
)

// Store errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
)

// UserStore persists user identity and credentials
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	ByUsername(ctx context.Context, username string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// WalletStore persists one balance record per user
type WalletStore interface {
	ByUserID(ctx context.Context, userID uint) (*domain.Wallet, error)
	Create(ctx context.Context, wallet *domain.Wallet) error
	// AddToBalance increments the wallet balance server-side and returns the
	// updated row. The increment runs inside a transaction so concurrent
	// deposits never lose updates to a read-modify-write race.
	AddToBalance(ctx context.Context, userID uint, amount float64) (*domain.Wallet, error)
}
