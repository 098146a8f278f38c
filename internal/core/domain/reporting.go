package domain

import (
	"github.com/shopspring/decimal"
)

// PartyPnLRow represents a single party's totals in the partywise
// profit-and-loss report.
type PartyPnLRow struct {
	PartyID          string          `json:"partyID"`
	PartyName        string          `json:"partyName"`
	SaleTotal        decimal.Decimal `json:"saleTotal"`     // Sum of sale-category ledger documents
	PurchaseTotal    decimal.Decimal `json:"purchaseTotal"` // Sum of purchase-category ledger documents
	NetAmount        decimal.Decimal `json:"netAmount"`     // SaleTotal - PurchaseTotal
	TransactionCount int             `json:"transactionCount"`
}

// DashboardSummary aggregates the headline figures shown on the dashboard.
type DashboardSummary struct {
	TotalReceivable  decimal.Decimal `json:"totalReceivable"`
	TotalPayable     decimal.Decimal `json:"totalPayable"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TransactionCount int             `json:"transactionCount"`
	ActiveParties    int             `json:"activeParties"`
	LowStockItems    int             `json:"lowStockItems"`
}
