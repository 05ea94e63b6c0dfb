// Package aggregator talks to the bank-data aggregator (Plaid) used to link
// bank accounts and pull their transactions.
package aggregator

import (
	"context"
	"time"
)

// Client is the subset of the aggregator API the service depends on.
type Client interface {
	CreateLinkToken(ctx context.Context, clientUserID string) (*LinkToken, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*Exchange, error)
	Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]Transaction, error)
}

type LinkToken struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
	RequestID  string    `json:"request_id"`
}

type Exchange struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// Transaction is a record as the aggregator returns it. Field names follow
// the aggregator's wire format since the import endpoint echoes them back.
type Transaction struct {
	TransactionID          string   `json:"transaction_id"`
	AccountID              string   `json:"account_id"`
	Amount                 float64  `json:"amount"`
	Date                   string   `json:"date"`
	Name                   string   `json:"name"`
	MerchantName           string   `json:"merchant_name"`
	Category               []string `json:"category"`
	Pending                bool     `json:"pending"`
	TransactionType        string   `json:"transaction_type"`
	PaymentChannel         string   `json:"payment_channel"`
	IsoCurrencyCode        string   `json:"iso_currency_code"`
	UnofficialCurrencyCode string   `json:"unofficial_currency_code"`
	Location               Location `json:"location"`
}

type Location struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// DateLayout is the aggregator's calendar date format.
const DateLayout = "2006-01-02"
