package models

import "time"

// Transaction is a bank transaction imported from the aggregator.
// Rows are never updated; (UserID, TransactionID) is unique.
type Transaction struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 uint      `gorm:"uniqueIndex:idx_transactions_user_txn;not null" json:"userId"`
	TransactionID          string    `gorm:"size:128;uniqueIndex:idx_transactions_user_txn;not null" json:"transactionId"`
	AccountID              string    `gorm:"size:128;index" json:"accountId"`
	Amount                 Money     `gorm:"type:bigint;not null" json:"amount"`
	Date                   time.Time `gorm:"index;not null" json:"date"`
	Name                   string    `gorm:"size:255" json:"name"`
	MerchantName           string    `gorm:"size:255" json:"merchantName"`
	Category               []string  `gorm:"serializer:json;type:text" json:"category"`
	Pending                bool      `json:"pending"`
	TransactionType        string    `gorm:"size:32" json:"transactionType"`
	PaymentChannel         string    `gorm:"size:32" json:"paymentChannel"`
	IsoCurrencyCode        string    `gorm:"size:8" json:"isoCurrencyCode"`
	UnofficialCurrencyCode string    `gorm:"size:16" json:"unofficialCurrencyCode"`
	Location               Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	CreatedAt              time.Time `json:"createdAt"`
}

type Location struct {
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:128" json:"city"`
	Region     string `gorm:"size:64" json:"region"`
	PostalCode string `gorm:"size:32" json:"postalCode"`
	Country    string `gorm:"size:8" json:"country"`
}
