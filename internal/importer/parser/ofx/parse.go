package ofx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/importer"
	"github.com/finance-tracker/backend/internal/importer/helpers"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrNoStatements = errors.New("the file does not contain any bank or credit card statements")

// Parse reads an OFX or QFX file and returns a preview for every statement
// line of its bank and credit card statements.
func Parse(f io.Reader) ([]importer.TransactionPreview, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}

	// ofxgo fails on anything before the header
	response, err := ofxgo.ParseResponse(strings.NewReader(strings.TrimLeft(string(content), " \t\r\n")))
	if err != nil {
		return nil, fmt.Errorf("could not parse OFX file: %w", err)
	}

	previews := make([]importer.TransactionPreview, 0)
	statements := 0

	for _, message := range response.Bank {
		statement, ok := message.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}

		statements++
		previews = append(previews, transactions(string(statement.BankAcctFrom.AcctID), statement.BankTranList)...)
	}

	for _, message := range response.CreditCard {
		statement, ok := message.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}

		statements++
		previews = append(previews, transactions(string(statement.CCAcctFrom.AcctID), statement.BankTranList)...)
	}

	if statements == 0 {
		return nil, ErrNoStatements
	}

	log.Debug().Int("statements", statements).Int("transactions", len(previews)).Msg("OFX import")
	return previews, nil
}

func transactions(accountID string, list *ofxgo.TransactionList) []importer.TransactionPreview {
	if list == nil {
		return nil
	}

	previews := make([]importer.TransactionPreview, 0, len(list.Transactions))
	for _, t := range list.Transactions {
		previews = append(previews, preview(accountID, t))
	}

	return previews
}

func preview(accountID string, t ofxgo.Transaction) importer.TransactionPreview {
	amount, err := decimal.NewFromString(t.TrnAmt.FloatString(8))
	if err != nil {
		log.Error().Str("fitid", string(t.FiTID)).Err(err).Msg("OFX import")
	}

	// Debits are negative
	transactionType := calculations.TypeIncome
	if !amount.IsPositive() {
		transactionType = calculations.TypeExpense
	}

	name := string(t.Name)
	if t.Payee != nil && t.Payee.Name != "" {
		name = string(t.Payee.Name)
	}
	name = strings.TrimSpace(name)

	note := name
	if memo := strings.TrimSpace(string(t.Memo)); memo != "" {
		if note == "" {
			note = memo
		} else {
			note = fmt.Sprintf("%s (%s)", note, memo)
		}
	}

	return importer.TransactionPreview{
		Transaction: models.Transaction{
			Amount:     amount.Abs(),
			Type:       transactionType,
			Date:       t.DtPosted.Time.In(time.UTC),
			Note:       note,
			Source:     models.SourceOFX,
			ExternalID: helpers.ImportHash(accountID, string(t.FiTID)),
		},
		Name: name,
	}
}
