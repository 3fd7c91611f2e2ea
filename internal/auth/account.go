package auth

import "time"

// Account is the device owner. The agent serves one user's notes; pairing
// a client means registering (or logging into) this account.
type Account struct {
	ID           uint64    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}
