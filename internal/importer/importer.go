// Package importer pulls a user's transactions from the aggregator and
// stores them.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lewin99/BuddyGet/internal/aggregator"
	"github.com/Lewin99/BuddyGet/internal/models"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CredentialSource resolves the stored aggregator credential of a user.
type CredentialSource interface {
	AccessToken(ctx context.Context, ownerID uint) (string, error)
}

// Sink persists normalized transactions and reports how many were new.
type Sink interface {
	SaveBatch(ctx context.Context, txns []models.Transaction) (int64, error)
}

// Result is what an import returns: the records as the aggregator sent
// them plus how many were stored for the first time.
type Result struct {
	Transactions []aggregator.Transaction `json:"transactions"`
	Fetched      int                      `json:"fetched"`
	Imported     int64                    `json:"imported"`
}

type Options struct {
	HistoryStart time.Time
	Timeout      time.Duration
}

type Importer struct {
	creds  CredentialSource
	client aggregator.Client
	sink   Sink
	opts   Options
	now    func() time.Time
	log    zerolog.Logger
}

func New(creds CredentialSource, client aggregator.Client, sink Sink, opts Options, log zerolog.Logger) *Importer {
	if opts.HistoryStart.IsZero() {
		opts.HistoryStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Importer{
		creds:  creds,
		client: client,
		sink:   sink,
		opts:   opts,
		now:    time.Now,
		log:    log.With().Str("component", "importer").Logger(),
	}
}

// ImportForUser fetches every transaction from the configured history
// start until today and stores the ones not seen before. Running it twice
// against unchanged aggregator data stores nothing the second time.
func (i *Importer) ImportForUser(ctx context.Context, ownerID uint) (*Result, error) {
	token, err := i.creds.AccessToken(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	end := i.now().UTC()
	callCtx, cancel := context.WithTimeout(ctx, i.opts.Timeout)
	defer cancel()

	raw, err := i.client.Transactions(callCtx, token, i.opts.HistoryStart, end)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", util.ErrUpstreamFailure, callCtx.Err())
		}
		i.log.Error().Err(err).Uint("user_id", ownerID).Msg("fetch transactions failed")
		return nil, fmt.Errorf("%w: %w", util.ErrImportFailed, err)
	}

	rows := make([]models.Transaction, 0, len(raw))
	for _, t := range raw {
		row, err := normalize(ownerID, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", util.ErrImportFailed, err)
		}
		rows = append(rows, row)
	}

	imported, err := i.sink.SaveBatch(ctx, rows)
	if err != nil {
		i.log.Error().Err(err).Uint("user_id", ownerID).Int64("imported", imported).Msg("store transactions failed")
		return nil, fmt.Errorf("%w: %w", util.ErrImportFailed, err)
	}

	i.log.Info().
		Uint("user_id", ownerID).
		Int("fetched", len(raw)).
		Int64("imported", imported).
		Msg("transactions imported")

	return &Result{
		Transactions: raw,
		Fetched:      len(raw),
		Imported:     imported,
	}, nil
}

func normalize(ownerID uint, t aggregator.Transaction) (models.Transaction, error) {
	if t.TransactionID == "" {
		return models.Transaction{}, errors.New("transaction without id")
	}
	date, err := time.ParseInLocation(aggregator.DateLayout, t.Date, time.UTC)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: bad date %q", t.TransactionID, t.Date)
	}
	category := t.Category
	if category == nil {
		category = []string{}
	}
	return models.Transaction{
		UserID:                 ownerID,
		TransactionID:          t.TransactionID,
		AccountID:              t.AccountID,
		Amount:                 models.NewMoney(decimal.NewFromFloat(t.Amount)),
		Date:                   date,
		Name:                   t.Name,
		MerchantName:           t.MerchantName,
		Category:               category,
		Pending:                t.Pending,
		TransactionType:        t.TransactionType,
		PaymentChannel:         t.PaymentChannel,
		IsoCurrencyCode:        t.IsoCurrencyCode,
		UnofficialCurrencyCode: t.UnofficialCurrencyCode,
		Location: models.Location{
			Address:    t.Location.Address,
			City:       t.Location.City,
			Region:     t.Location.Region,
			PostalCode: t.Location.PostalCode,
			Country:    t.Location.Country,
		},
	}, nil
}
