package csvio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/billingup/billingup-backend/internal/utils/csvio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStatementRows(t *testing.T) {
	rows := []csvio.StatementRow{
		{Date: "2025-06-01", TransactionNumber: "INV-001", TransactionType: "sale_invoice", Credit: "500", Debit: "", Balance: "1500"},
		{Date: "2025-06-02", TransactionNumber: "PAY-001", TransactionType: "payment_out", Credit: "", Debit: "200", Balance: "1300"},
	}

	var buf bytes.Buffer
	require.NoError(t, csvio.Write(&buf, rows))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Number,Type,Notes,Credit,Debit,Balance", lines[0])
	assert.Contains(t, lines[1], "INV-001")
	assert.Contains(t, lines[2], "1300")
}

func TestReadPartyImportRows(t *testing.T) {
	data := "Name,Phone,Email,Address,GSTIN,Party Type,Opening Balance\n" +
		"Acme Traders,9876543210,acme@example.com,12 Market Rd,27AAAAA0000A1Z5,customer,1000\n" +
		"Global Supplies,,,,,vendor,-250\n"

	rows, err := csvio.Read[csvio.PartyImportRow](strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme Traders", rows[0].Name)
	assert.Equal(t, "customer", rows[0].PartyType)
	assert.Equal(t, "1000", rows[0].OpeningBalance)
	assert.Equal(t, "Global Supplies", rows[1].Name)
	assert.Equal(t, "-250", rows[1].OpeningBalance)
}

func TestReadMalformedCSV(t *testing.T) {
	// Row with a mismatched quote cannot be parsed.
	data := "Name,Phone,Email,Address,GSTIN,Party Type,Opening Balance\n\"broken,,,,,customer,0\n"
	_, err := csvio.Read[csvio.PartyImportRow](strings.NewReader(data))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	rows := []csvio.PartyImportRow{
		{Name: "Acme", PartyType: "customer", OpeningBalance: "42"},
	}
	var buf bytes.Buffer
	require.NoError(t, csvio.Write(&buf, rows))

	parsed, err := csvio.Read[csvio.PartyImportRow](&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, rows[0], parsed[0])
}
