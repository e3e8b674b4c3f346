package query

import (
	"context"
	"database/sql"
	"fmt"
)

type InvoiceAmount struct {
	Amount int64  `json:"amount"`
	Name   string `json:"name"`
}

type Repository interface {
	FindInvoicesByAmount(ctx context.Context, amount int64) ([]InvoiceAmount, error)
}

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindInvoicesByAmount(ctx context.Context, amount int64) ([]InvoiceAmount, error) {
	query := `
		SELECT invoices.amount, customers.name
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE invoices.amount = ?`

	rows, err := r.db.QueryContext(ctx, query, amount)
	if err != nil {
		return nil, fmt.Errorf("querying invoices by amount: %w", err)
	}
	defer rows.Close()

	result := []InvoiceAmount{}
	for rows.Next() {
		var ia InvoiceAmount
		if err := rows.Scan(&ia.Amount, &ia.Name); err != nil {
			return nil, fmt.Errorf("scanning invoice amount row: %w", err)
		}
		result = append(result, ia)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice amount rows: %w", err)
	}

	return result, nil
}
