package plaid

import (
	"context"
	"time"
)

// Mock is a Service with fixed responses.
type Mock struct {
	LinkToken         string
	Item              Item
	TransactionsByKey map[string][]Transaction
	Err               error

	// Requests records the access tokens transactions were requested for
	Requests []string
}

func (m *Mock) CreateLinkToken(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.LinkToken, nil
}

func (m *Mock) ExchangePublicToken(_ context.Context, _ string) (Item, error) {
	if m.Err != nil {
		return Item{}, m.Err
	}
	return m.Item, nil
}

func (m *Mock) Transactions(_ context.Context, accessToken string, start, end time.Time) ([]Transaction, error) {
	m.Requests = append(m.Requests, accessToken)
	if m.Err != nil {
		return nil, m.Err
	}

	transactions := make([]Transaction, 0)
	for _, t := range m.TransactionsByKey[accessToken] {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

var _ Service = (*Mock)(nil)
