package plaid

import (
	"context"
	"fmt"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/rs/zerolog/log"
)

// pageSize is the maximum number of transactions Plaid returns per request.
const pageSize = int32(500)

// Config contains the credentials for the Plaid API.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	WebhookURL  string
}

// Client implements Service with the Plaid API.
type Client struct {
	api        *plaid.APIClient
	webhookURL string
}

// NewClient returns a client for the Plaid environment in the configuration.
func NewClient(c Config) (*Client, error) {
	if c.ClientID == "" || c.Secret == "" {
		return nil, ErrNotConfigured
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", c.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", c.Secret)

	switch c.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		return nil, fmt.Errorf("invalid Plaid environment %q: must be sandbox or production", c.Environment)
	}

	return &Client{
		api:        plaid.NewAPIClient(configuration),
		webhookURL: c.WebhookURL,
	}, nil
}

func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	request := plaid.NewLinkTokenCreateRequest(
		"Finance Tracker",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
		plaid.LinkTokenCreateRequestUser{ClientUserId: userID},
	)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	if c.webhookURL != "" {
		request.SetWebhook(c.webhookURL)
	}

	response, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", apiError("could not create link token", err)
	}

	return response.GetLinkToken(), nil
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (Item, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)

	response, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return Item{}, apiError("could not exchange public token", err)
	}

	return Item{
		ItemID:      response.GetItemId(),
		AccessToken: response.GetAccessToken(),
	}, nil
}

func (c *Client) Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]Transaction, error) {
	transactions := make([]Transaction, 0)
	offset := int32(0)

	for {
		request := plaid.NewTransactionsGetRequest(accessToken, start.Format(dateFormat), end.Format(dateFormat))
		request.SetOptions(plaid.TransactionsGetRequestOptions{
			Count:  plaid.PtrInt32(pageSize),
			Offset: plaid.PtrInt32(offset),
		})

		response, _, err := c.api.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
		if err != nil {
			return nil, apiError("could not fetch transactions", err)
		}

		page := response.GetTransactions()
		for _, t := range page {
			transaction, err := Transform(t)
			if err != nil {
				log.Warn().Err(err).Str("transaction", t.GetTransactionId()).Msg("Plaid: skipping transaction")
				continue
			}
			transactions = append(transactions, transaction)
		}

		log.Debug().Int("count", len(page)).Int32("offset", offset).Int32("total", response.GetTotalTransactions()).Msg("Plaid")

		offset += int32(len(page))
		if len(page) < int(pageSize) || offset >= response.GetTotalTransactions() {
			break
		}
	}

	return transactions, nil
}

// apiError adds the Plaid error code to err when there is one.
func apiError(msg string, err error) error {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}

	return fmt.Errorf("%s: %s - %s", msg, plaidErr.ErrorCode, plaidErr.ErrorMessage)
}

var _ Service = (*Client)(nil)
