package models

import "time"

// UserAccount links a user to an aggregator item. The access token is
// stored encrypted.
type UserAccount struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"uniqueIndex;not null"`
	ItemID         string    `gorm:"size:128"`
	AccessTokenEnc string    `gorm:"size:1024;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
