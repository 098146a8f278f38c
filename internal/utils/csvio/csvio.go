// Package csvio wraps gocsv with the reader/writer plumbing shared by the
// CSV endpoints (statement export, party import).
package csvio

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Read parses CSV data into a slice of row structs. TRow carries the
// column mapping via csv tags.
func Read[TRow any](r io.Reader) ([]TRow, error) {
	var rows []TRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// Write serializes rows as CSV, header included.
func Write[TRow any](w io.Writer, rows []TRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// StatementRow is one line of an exported party statement.
type StatementRow struct {
	Date              string `csv:"Date"`
	TransactionNumber string `csv:"Number"`
	TransactionType   string `csv:"Type"`
	Notes             string `csv:"Notes"`
	Credit            string `csv:"Credit"`
	Debit             string `csv:"Debit"`
	Balance           string `csv:"Balance"`
}

// PartyImportRow mirrors the bulk-import template header.
type PartyImportRow struct {
	Name           string `csv:"Name"`
	Phone          string `csv:"Phone"`
	Email          string `csv:"Email"`
	Address        string `csv:"Address"`
	GSTIN          string `csv:"GSTIN"`
	PartyType      string `csv:"Party Type"`
	OpeningBalance string `csv:"Opening Balance"`
}
