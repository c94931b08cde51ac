// Package export writes transactions to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/currency"
)

const (
	TransactionsSheet = "Transactions"
	SummarySheet      = "Summary"
	dateFormat        = "2006-01-02"
)

// Workbook builds a workbook with a sheet listing the transactions and a
// sheet summarizing them.
func Workbook(transactions []calculations.Transaction, unit currency.Unit) (*excelize.File, error) {
	f := excelize.NewFile()

	err := f.SetSheetName("Sheet1", TransactionsSheet)
	if err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	err = transactionSheet(f, transactions, unit, header, money)
	if err != nil {
		return nil, err
	}

	err = summarySheet(f, transactions, unit, header, money)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Write writes the workbook for the transactions to w.
func Write(w io.Writer, transactions []calculations.Transaction, unit currency.Unit) error {
	f, err := Workbook(transactions, unit)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

func transactionSheet(f *excelize.File, transactions []calculations.Transaction, unit currency.Unit, header, money int) error {
	columns := []any{"Date", "Type", "Category", fmt.Sprintf("Amount (%s)", unit), "Note"}
	err := f.SetSheetRow(TransactionsSheet, "A1", &columns)
	if err != nil {
		return err
	}

	for i, t := range transactions {
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{t.Date.Format(dateFormat), string(t.Type), category, t.Amount.InexactFloat64(), t.Note}
		err = f.SetSheetRow(TransactionsSheet, cell, &row)
		if err != nil {
			return err
		}
	}

	err = f.SetCellStyle(TransactionsSheet, "A1", "E1", header)
	if err != nil {
		return err
	}

	if len(transactions) > 0 {
		err = f.SetCellStyle(TransactionsSheet, "D2", fmt.Sprintf("D%d", len(transactions)+1), money)
		if err != nil {
			return err
		}
	}

	return f.SetColWidth(TransactionsSheet, "A", "E", 16)
}

func summarySheet(f *excelize.File, transactions []calculations.Transaction, unit currency.Unit, header, money int) error {
	_, err := f.NewSheet(SummarySheet)
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Currency", unit.String()},
		{"Total income", calculations.TotalIncome(transactions).InexactFloat64()},
		{"Total expenses", calculations.TotalExpenses(transactions).InexactFloat64()},
		{"Net balance", calculations.NetBalance(transactions).InexactFloat64()},
		{},
		{"Category", "Expenses", "Percentage", "Transactions"},
	}

	for _, s := range calculations.AggregateExpensesByCategory(transactions) {
		rows = append(rows, []any{s.CategoryName, s.Amount.InexactFloat64(), s.Percentage.InexactFloat64(), s.TransactionCount})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		err = f.SetSheetRow(SummarySheet, cell, &row)
		if err != nil {
			return err
		}
	}

	err = f.SetCellStyle(SummarySheet, "A6", "D6", header)
	if err != nil {
		return err
	}

	err = f.SetCellStyle(SummarySheet, "B2", "B4", money)
	if err != nil {
		return err
	}

	return f.SetColWidth(SummarySheet, "A", "D", 18)
}
