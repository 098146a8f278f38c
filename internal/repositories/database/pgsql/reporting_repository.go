package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/billingup/billingup-backend/internal/core/domain"
	portsrepo "github.com/billingup/billingup-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction types grouped for report aggregation. These mirror the
// classification in the ledger package; delivery challans, estimates and
// orders are documents without monetary effect and stay out of the totals.
const (
	saleTypesSQL     = `('sale_invoice', 'payment_in')`
	saleReturnSQL    = `'sale_return'`
	purchaseTypesSQL = `('purchase', 'payment_out', 'expense')`
	purchaseRetSQL   = `'purchase_return'`
)

// lowStockThreshold marks an item as running low on the dashboard.
const lowStockThreshold = 10

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetPartywisePnL aggregates sale and purchase totals per party. Returns
// are subtracted from their side so a heavily-returned sale does not
// inflate the party's standing.
func (r *reportingRepository) GetPartywisePnL(ctx context.Context, userID string, dateFrom *time.Time, dateTo *time.Time) ([]domain.PartyPnLRow, error) {
	// Date filters belong in the join condition: a party with no
	// transactions in the window still gets a zeroed row.
	query := `
		SELECT
			p.party_id,
			p.name AS party_name,
			COALESCE(SUM(CASE WHEN t.transaction_type IN ` + saleTypesSQL + ` THEN t.total_amount
			                  WHEN t.transaction_type = ` + saleReturnSQL + ` THEN -t.total_amount
			                  ELSE 0 END), 0) AS sale_total,
			COALESCE(SUM(CASE WHEN t.transaction_type IN ` + purchaseTypesSQL + ` THEN t.total_amount
			                  WHEN t.transaction_type = ` + purchaseRetSQL + ` THEN -t.total_amount
			                  ELSE 0 END), 0) AS purchase_total,
			COUNT(t.transaction_id) AS transaction_count
		FROM parties p
		LEFT JOIN transactions t ON t.party_id = p.party_id AND t.user_id = p.user_id
	`
	args := []interface{}{userID}
	if dateFrom != nil {
		args = append(args, *dateFrom)
		query += ` AND t.transaction_date >= $` + strconv.Itoa(len(args))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		query += ` AND t.transaction_date <= $` + strconv.Itoa(len(args))
	}
	query += `
		WHERE p.user_id = $1 AND p.is_active = TRUE
		GROUP BY p.party_id, p.name
		ORDER BY sale_total - purchase_total DESC;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying partywise P&L data: %w", err)
	}
	defer rows.Close()

	var result []domain.PartyPnLRow
	for rows.Next() {
		var row domain.PartyPnLRow
		if err := rows.Scan(
			&row.PartyID,
			&row.PartyName,
			&row.SaleTotal,
			&row.PurchaseTotal,
			&row.TransactionCount,
		); err != nil {
			return nil, fmt.Errorf("error scanning partywise P&L row: %w", err)
		}
		row.NetAmount = row.SaleTotal.Sub(row.PurchaseTotal)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partywise P&L rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.PartyPnLRow{}, nil
	}

	return result, nil
}

// GetDashboardSummary computes the headline aggregates in one round trip
// using a batch of three aggregate queries.
func (r *reportingRepository) GetDashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	partyQuery := `
		SELECT
			COALESCE(SUM(GREATEST(current_balance, 0)), 0) AS total_receivable,
			COALESCE(SUM(GREATEST(-current_balance, 0)), 0) AS total_payable,
			COUNT(*) AS active_parties
		FROM parties
		WHERE user_id = $1 AND is_active = TRUE;
	`
	txnQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type IN ` + saleTypesSQL + ` THEN total_amount
			                  WHEN transaction_type = ` + saleReturnSQL + ` THEN -total_amount
			                  ELSE 0 END), 0) AS total_sales,
			COALESCE(SUM(CASE WHEN transaction_type IN ` + purchaseTypesSQL + ` THEN total_amount
			                  WHEN transaction_type = ` + purchaseRetSQL + ` THEN -total_amount
			                  ELSE 0 END), 0) AS total_purchases,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE user_id = $1;
	`
	itemQuery := `
		SELECT COUNT(*) AS low_stock_items
		FROM items
		WHERE user_id = $1 AND is_active = TRUE AND stock_quantity < $2;
	`

	batch := &pgx.Batch{}
	batch.Queue(partyQuery, userID)
	batch.Queue(txnQuery, userID)
	batch.Queue(itemQuery, userID, lowStockThreshold)

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	var summary domain.DashboardSummary
	if err := br.QueryRow().Scan(&summary.TotalReceivable, &summary.TotalPayable, &summary.ActiveParties); err != nil {
		return nil, fmt.Errorf("error scanning party aggregates: %w", err)
	}
	if err := br.QueryRow().Scan(&summary.TotalSales, &summary.TotalPurchases, &summary.TransactionCount); err != nil {
		return nil, fmt.Errorf("error scanning transaction aggregates: %w", err)
	}
	if err := br.QueryRow().Scan(&summary.LowStockItems); err != nil {
		return nil, fmt.Errorf("error scanning item aggregates: %w", err)
	}

	return &summary, nil
}
