package dto

import (
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportDateRangeParams defines the optional date window shared by report
// endpoints.
type ReportDateRangeParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// PartyPnLRowResponse represents one party's totals in the partywise
// profit-and-loss report.
type PartyPnLRowResponse struct {
	PartyID          string          `json:"partyID"`
	PartyName        string          `json:"partyName"`
	SaleTotal        decimal.Decimal `json:"saleTotal"`
	PurchaseTotal    decimal.Decimal `json:"purchaseTotal"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	TransactionCount int             `json:"transactionCount"`
}

// PartywisePnLResponse represents the partywise profit-and-loss report.
type PartywisePnLResponse struct {
	FromDate string                `json:"fromDate,omitempty"`
	ToDate   string                `json:"toDate,omitempty"`
	Rows     []PartyPnLRowResponse `json:"rows"`
	Totals   struct {
		Sales     decimal.Decimal `json:"sales"`
		Purchases decimal.Decimal `json:"purchases"`
		Net       decimal.Decimal `json:"net"`
	} `json:"totals"`
}

// DashboardSummaryResponse represents the headline dashboard aggregates.
type DashboardSummaryResponse struct {
	TotalReceivable  decimal.Decimal `json:"totalReceivable"`
	TotalPayable     decimal.Decimal `json:"totalPayable"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TransactionCount int             `json:"transactionCount"`
	ActiveParties    int             `json:"activeParties"`
	LowStockItems    int             `json:"lowStockItems"`
}

// ToPartywisePnLResponse converts domain P&L rows to a DTO response.
func ToPartywisePnLResponse(rows []domain.PartyPnLRow, from, to *time.Time) PartywisePnLResponse {
	response := PartywisePnLResponse{
		Rows: make([]PartyPnLRowResponse, len(rows)),
	}
	if from != nil {
		response.FromDate = from.Format("2006-01-02")
	}
	if to != nil {
		response.ToDate = to.Format("2006-01-02")
	}

	totalSales := decimal.Zero
	totalPurchases := decimal.Zero
	for i, row := range rows {
		response.Rows[i] = PartyPnLRowResponse{
			PartyID:          row.PartyID,
			PartyName:        row.PartyName,
			SaleTotal:        row.SaleTotal,
			PurchaseTotal:    row.PurchaseTotal,
			NetAmount:        row.NetAmount,
			TransactionCount: row.TransactionCount,
		}
		totalSales = totalSales.Add(row.SaleTotal)
		totalPurchases = totalPurchases.Add(row.PurchaseTotal)
	}

	response.Totals.Sales = totalSales
	response.Totals.Purchases = totalPurchases
	response.Totals.Net = totalSales.Sub(totalPurchases)

	return response
}

// ToDashboardSummaryResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalReceivable:  s.TotalReceivable,
		TotalPayable:     s.TotalPayable,
		TotalSales:       s.TotalSales,
		TotalPurchases:   s.TotalPurchases,
		TransactionCount: s.TransactionCount,
		ActiveParties:    s.ActiveParties,
		LowStockItems:    s.LowStockItems,
	}
}
