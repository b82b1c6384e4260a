package domain

import "time"

// Wallet Model
type Wallet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`        // Foreign key to User, unique for one-to-one
	WalletAddress string    `gorm:"uniqueIndex;not null" json:"wallet_address"` // Unique wallet address, generated at creation
	Balance       float64   `gorm:"not null;default:0" json:"balance"`          // Current balance, defaults to 0.0
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`           // Timestamp of creation
}
