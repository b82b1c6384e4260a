package service

import (
	"context"
	"errors"

	"arb_backend/internal/domain" // Importing domain models
	"arb_backend/internal/store"  // Persistence interfaces

	"github.com/google/uuid" // Wallet address generation
)

// LedgerService owns all balance reads and mutations. Both deposit entry
// points (the wallet route and any internal caller) go through the single
// Deposit operation here.
type LedgerService struct {
	wallets store.WalletStore
}

// NewLedgerService creates a LedgerService
func NewLedgerService(wallets store.WalletStore) *LedgerService {
	return &LedgerService{wallets: wallets}
}

// GetWallet fetches the wallet for a user. This path never auto-creates.
func (s *LedgerService) GetWallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	wallet, err := s.wallets.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

// GetOrCreateWallet returns the user's wallet, creating it with a fresh
// random address and zero balance on first access. The unique index on
// user_id decides concurrent first-access races: the loser re-reads and
// returns the winner's row instead of surfacing the conflict.
func (s *LedgerService) GetOrCreateWallet(ctx context.Context, userID uint) (*domain.Wallet, error) {
	wallet, err := s.wallets.ByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, store.ErrWalletNotFound) {
		return nil, err
	}
	wallet = &domain.Wallet{
		UserID:        userID,
		WalletAddress: uuid.NewString(), // 128-bit random address
		Balance:       0,
	}
	if cerr := s.wallets.Create(ctx, wallet); cerr != nil {
		if errors.Is(cerr, store.ErrWalletExists) {
			return s.wallets.ByUserID(ctx, userID) // Lost the race, take the winner's wallet
		}
		if errors.Is(cerr, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, cerr
	}
	return wallet, nil
}

// Deposit adds amount to the user's balance and returns the updated wallet.
// The amount is applied as-is: zero and negative values are accepted and
// decrease the balance accordingly, matching the historical behavior of this
// endpoint. Rejecting non-positive amounts is pending product input.
func (s *LedgerService) Deposit(ctx context.Context, userID uint, amount float64) (*domain.Wallet, error) {
	wallet, err := s.wallets.AddToBalance(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, store.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}
