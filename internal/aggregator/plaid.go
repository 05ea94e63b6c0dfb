package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lewin99/BuddyGet/internal/config"
	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/plaid/plaid-go/v20/plaid"
)

// Plaid implements Client on top of the official plaid-go client.
type Plaid struct {
	api          *plaid.PlaidApiService
	clientName   string
	language     string
	countryCodes []plaid.CountryCode
	pageSize     int32
}

var environments = map[string]plaid.Environment{
	"sandbox":    plaid.Sandbox,
	"production": plaid.Production,
}

// NewPlaid builds a client from configuration.
func NewPlaid(cfg config.PlaidConfig) (*Plaid, error) {
	env, ok := environments[strings.ToLower(cfg.Environment)]
	if !ok {
		return nil, fmt.Errorf("unknown plaid environment %q", cfg.Environment)
	}

	codes := make([]plaid.CountryCode, 0, len(cfg.CountryCodes))
	for _, c := range cfg.CountryCodes {
		code := plaid.CountryCode(strings.ToUpper(strings.TrimSpace(c)))
		if !code.IsValid() {
			return nil, fmt.Errorf("unsupported plaid country code %q", c)
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		codes = append(codes, plaid.COUNTRYCODE_US)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 500
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}

	pc := plaid.NewConfiguration()
	pc.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	pc.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	pc.UseEnvironment(env)

	return &Plaid{
		api:          plaid.NewAPIClient(pc).PlaidApi,
		clientName:   cfg.ClientName,
		language:     language,
		countryCodes: codes,
		pageSize:     int32(pageSize),
	}, nil
}

func (p *Plaid) CreateLinkToken(ctx context.Context, clientUserID string) (*LinkToken, error) {
	user := plaid.LinkTokenCreateRequestUser{ClientUserId: clientUserID}
	req := plaid.NewLinkTokenCreateRequest(p.clientName, p.language, p.countryCodes, user)
	req.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := p.api.LinkTokenCreate(ctx).LinkTokenCreateRequest(*req).Execute()
	if err != nil {
		return nil, upstream("create link token", err)
	}
	return &LinkToken{
		LinkToken:  resp.GetLinkToken(),
		Expiration: resp.GetExpiration(),
		RequestID:  resp.GetRequestId(),
	}, nil
}

func (p *Plaid) ExchangePublicToken(ctx context.Context, publicToken string) (*Exchange, error) {
	req := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := p.api.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*req).Execute()
	if err != nil {
		return nil, upstream("exchange public token", err)
	}
	return &Exchange{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// Transactions pages through /transactions/get until every transaction in
// the window has been read.
func (p *Plaid) Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]Transaction, error) {
	var out []Transaction
	var offset int32
	for {
		req := plaid.NewTransactionsGetRequest(accessToken, start.Format(DateLayout), end.Format(DateLayout))
		opts := plaid.NewTransactionsGetRequestOptions()
		opts.SetCount(p.pageSize)
		opts.SetOffset(offset)
		req.SetOptions(*opts)

		resp, _, err := p.api.TransactionsGet(ctx).TransactionsGetRequest(*req).Execute()
		if err != nil {
			return nil, upstream("get transactions", err)
		}

		page := resp.GetTransactions()
		for _, t := range page {
			out = append(out, fromPlaid(t))
		}
		offset += int32(len(page))
		if len(page) == 0 || offset >= resp.GetTotalTransactions() {
			return out, nil
		}
	}
}

func fromPlaid(t plaid.Transaction) Transaction {
	loc := t.GetLocation()
	return Transaction{
		TransactionID:          t.GetTransactionId(),
		AccountID:              t.GetAccountId(),
		Amount:                 t.GetAmount(),
		Date:                   t.GetDate(),
		Name:                   t.GetName(),
		MerchantName:           t.GetMerchantName(),
		Category:               t.GetCategory(),
		Pending:                t.GetPending(),
		TransactionType:        t.GetTransactionType(),
		PaymentChannel:         t.GetPaymentChannel(),
		IsoCurrencyCode:        t.GetIsoCurrencyCode(),
		UnofficialCurrencyCode: t.GetUnofficialCurrencyCode(),
		Location: Location{
			Address:    loc.GetAddress(),
			City:       loc.GetCity(),
			Region:     loc.GetRegion(),
			PostalCode: loc.GetPostalCode(),
			Country:    loc.GetCountry(),
		},
	}
}

// upstream wraps a plaid-go error in ErrUpstreamFailure, keeping the
// aggregator's error code when one was returned.
func upstream(op string, err error) error {
	if perr, convErr := plaid.ToPlaidError(err); convErr == nil && perr.GetErrorCode() != "" {
		return fmt.Errorf("%s: %w: %s: %s", op, util.ErrUpstreamFailure, perr.GetErrorCode(), perr.GetErrorMessage())
	}
	return fmt.Errorf("%s: %w: %w", op, util.ErrUpstreamFailure, err)
}
