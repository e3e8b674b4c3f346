package overview

import (
	"context"
	"database/sql"
	"fmt"

	"dashboard/internal/domain"
)

type CardData struct {
	NumberOfInvoices  int
	NumberOfCustomers int
	TotalPaidCents    int64
	TotalPendingCents int64
}

type Repository interface {
	FetchCardData(ctx context.Context) (*CardData, error)
	FetchLatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceRow, error)
}

type mysqlRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) Repository {
	return &mysqlRepository{db: db}
}

func (r *mysqlRepository) FetchCardData(ctx context.Context) (*CardData, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM customers),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices`

	var data CardData
	err := r.db.QueryRowContext(ctx, query).Scan(
		&data.NumberOfInvoices, &data.NumberOfCustomers,
		&data.TotalPaidCents, &data.TotalPendingCents,
	)
	if err != nil {
		return nil, fmt.Errorf("querying card data: %w", err)
	}

	return &data, nil
}

func (r *mysqlRepository) FetchLatestInvoices(ctx context.Context, limit int) ([]domain.InvoiceRow, error) {
	query := `
		SELECT invoices.id, invoices.amount, customers.name, customers.email
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying latest invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.InvoiceRow
	for rows.Next() {
		var row domain.InvoiceRow
		if err := rows.Scan(&row.ID, &row.AmountCents, &row.CustomerName, &row.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scanning latest invoice: %w", err)
		}
		invoices = append(invoices, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating latest invoices: %w", err)
	}

	return invoices, nil
}
