package store

import (
	"context"
	"errors"
	"fmt"

	"arb_backend/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormWalletStore is the MySQL-backed WalletStore
type GormWalletStore struct {
	db *gorm.DB
}

// NewGormWalletStore creates a WalletStore backed by the shared GORM pool
func NewGormWalletStore(db *gorm.DB) *GormWalletStore {
	return &GormWalletStore{db: db}
}

// ByUserID fetches the wallet owned by the given user
func (s *GormWalletStore) ByUserID(ctx context.Context, userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet by user id: %w", err)
	}
	return &wallet, nil
}

// Create inserts a new wallet row inside a transaction. The unique index on
// user_id is the arbiter for concurrent first-access races; the foreign key
// to users rejects wallets for unknown owners.
func (s *GormWalletStore) Create(ctx context.Context, wallet *domain.Wallet) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(wallet).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrWalletExists // Another request won the create race
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserNotFound // No such user to own the wallet
		}
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

// AddToBalance applies balance = balance + amount server-side and returns the
// updated wallet row
func (s *GormWalletStore) AddToBalance(ctx context.Context, userID uint, amount float64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Increment in the database, not in application code
		res := tx.Model(&domain.Wallet{}).
			Where("user_id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		// The re-read decides whether the wallet exists. RowsAffected cannot:
		// MySQL counts changed rows, so a zero-delta update on an existing
		// wallet reports zero rows.
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("deposit to wallet: %w", err)
	}
	return &wallet, nil
}
