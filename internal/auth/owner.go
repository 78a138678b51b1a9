package auth

import "time"

// Owner is the single account the journal belongs to. The app is not
// multi-user: at most one row ever exists.
type Owner struct {
	ID           uint64    `gorm:"primaryKey"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
