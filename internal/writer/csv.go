package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// Meta is the account metadata written as comment rows ahead of the data.
type Meta struct {
	Name      string
	AccountNo string
	Currency  string
	Balance   decimal.Decimal
}

// Record is one CSV data row.
type Record struct {
	Date        string
	Description string
	Amount      decimal.Decimal
}

// CSVWriter writes an account's statements to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statements to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, meta Meta, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, meta, records)
}

// Write writes the statements in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, meta Meta, records []Record) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Write metadata as comments (CSV header rows)
	if w.IncludeHeader {
		if meta.Name != "" {
			writer.Write([]string{"# Account", meta.Name})
		}
		if meta.AccountNo != "" {
			writer.Write([]string{"# Account Number", meta.AccountNo})
		}
		if meta.Currency != "" {
			writer.Write([]string{"# Currency", meta.Currency})
		}
		writer.Write([]string{"# Balance", meta.Balance.StringFixed(2)})
	}

	header := []string{"Date", "Description", "Amount"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Date,
			rec.Description,
			rec.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
