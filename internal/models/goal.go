package models

import "time"

// Goal is a savings target. UpdatedAt doubles as the last progress time.
type Goal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	TargetAmount  Money     `gorm:"type:bigint;not null" json:"targetAmount"`
	CurrentAmount Money     `gorm:"type:bigint;not null;default:0" json:"currentAmount"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
