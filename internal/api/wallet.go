package api

import (
	"context" // Context for Redis operations
	"errors"
	"fmt"
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"arb_backend/internal/cache"   // Redis cache helpers
	"arb_backend/internal/domain"  // Importing domain models
	"arb_backend/internal/service" // Business services

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"github.com/sirupsen/logrus" // Logging library
)

const walletCacheTTL = 60 * time.Second // Wallet reads are cached briefly

// CreateWalletRequest is the JSON body for wallet creation
type CreateWalletRequest struct {
	UserID uint `json:"user_id" binding:"required"` // Owning user ID
}

// DepositRequest is the JSON body for a deposit
type DepositRequest struct {
	UserID uint     `json:"user_id" binding:"required"` // Owning user ID
	Amount *float64 `json:"amount" binding:"required"`  // Deposit amount; pointer so 0 and negatives pass binding
}

// WalletResponse is the public view of a wallet
type WalletResponse struct {
	ID            uint    `json:"id"`             // Wallet ID
	UserID        uint    `json:"user_id"`        // Owning user ID
	WalletAddress string  `json:"wallet_address"` // Wallet address
	Balance       float64 `json:"balance"`        // Current balance
}

// DepositResponse is returned after a successful deposit
type DepositResponse struct {
	WalletID      uint    `json:"wallet_id"`      // Wallet ID
	WalletAddress string  `json:"wallet_address"` // Wallet address
	NewBalance    float64 `json:"new_balance"`    // Balance after the deposit
	Message       string  `json:"message"`        // Human-readable confirmation
}

func walletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{ID: w.ID, UserID: w.UserID, WalletAddress: w.WalletAddress, Balance: w.Balance}
}

func walletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// invalidateWalletCache drops the cached wallet and the debug user listing
// after any wallet mutation
func invalidateWalletCache(rdb *redis.Client, userID uint) {
	ctx := context.Background() // Context for Redis operations
	_ = cache.Delete(ctx, rdb, walletCacheKey(userID))
	_ = cache.Delete(ctx, rdb, usersCacheKey)
}

// CreateWalletHandler returns the user's wallet, creating it on first access
func CreateWalletHandler(ledger *service.LedgerService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := ledger.GetOrCreateWallet(c.Request.Context(), req.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create wallet") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
			return
		}
		// Log wallet access; creation is idempotent so repeats are normal
		logrus.WithFields(logrus.Fields{
			"user_id":   req.UserID,           // User ID
			"wallet_id": wallet.ID,            // Wallet ID
			"address":   wallet.WalletAddress, // Wallet address
		}).Info("Wallet ready")
		invalidateWalletCache(rdb, req.UserID) // Drop any stale cached copy
		c.JSON(http.StatusOK, walletResponse(wallet))
	}
}

// GetWalletHandler returns the wallet for a user, serving from Redis when fresh
func GetWalletHandler(ledger *service.LedgerService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		ctx := context.Background()         // Context for Redis operations
		key := walletCacheKey(uint(userID)) // Cache key for this wallet
		var cached WalletResponse           // Cached response, if any
		found, cerr := cache.Get(ctx, rdb, key, &cached)
		if cerr == nil && found {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}
		wallet, err := ledger.GetWallet(c.Request.Context(), uint(userID))
		if err != nil {
			if errors.Is(err, service.ErrWalletNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
			return
		}
		resp := walletResponse(wallet)
		_ = cache.Set(ctx, rdb, key, resp, walletCacheTTL) // Cache for subsequent reads
		c.JSON(http.StatusOK, resp)
	}
}

// DepositHandler adds funds to a user's wallet
func DepositHandler(ledger *service.LedgerService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DepositRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := ledger.Deposit(c.Request.Context(), req.UserID, *req.Amount)
		if err != nil {
			if errors.Is(err, service.ErrWalletNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found for this user"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // User ID
				"amount":  *req.Amount, // Deposit amount
				"error":   err.Error(), // Error message
			}).Error("Deposit failed") // Log deposit failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deposit failed"})
			return
		}
		// Log successful deposit
		logrus.WithFields(logrus.Fields{
			"user_id":     req.UserID,     // User ID
			"amount":      *req.Amount,    // Deposit amount
			"new_balance": wallet.Balance, // Balance after the deposit
		}).Info("Deposit applied")
		invalidateWalletCache(rdb, req.UserID) // Drop the stale cached balance
		c.JSON(http.StatusOK, DepositResponse{
			WalletID:      wallet.ID,            // Wallet ID
			WalletAddress: wallet.WalletAddress, // Wallet address
			NewBalance:    wallet.Balance,       // Balance after the deposit
			Message:       fmt.Sprintf("Successfully deposited %v to wallet %s", *req.Amount, wallet.WalletAddress),
		})
	}
}
