package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                // Primary key
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`                // Unique username
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`                   // Unique email address
	Password  string    `gorm:"not null" json:"-"`                                   // Hashed password, never serialized
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`                    // Timestamp of creation
	Wallet    *Wallet   `gorm:"constraint:OnUpdate:CASCADE" json:"wallet,omitempty"` // One-to-one relationship with Wallet
}
