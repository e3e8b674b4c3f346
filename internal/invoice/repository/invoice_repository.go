package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dashboard/internal/domain"
	"dashboard/internal/errors"
)

type MySQLInvoiceRepository struct {
	db *sql.DB
}

func NewMySQLInvoiceRepository(db *sql.DB) *MySQLInvoiceRepository {
	return &MySQLInvoiceRepository{db: db}
}

func (r *MySQLInvoiceRepository) Insert(ctx context.Context, inv domain.Invoice) error {
	query := `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, inv.ID, inv.CustomerID, inv.AmountCents, string(inv.Status), inv.Date)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", classify(err))
	}

	return nil
}

func (r *MySQLInvoiceRepository) Update(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	query := `UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, customerID, amountCents, string(status), id)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}

	return nil
}

func (r *MySQLInvoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}

	return nil
}

func (r *MySQLInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = ?
	`

	var (
		inv    domain.Invoice
		status string
		date   time.Time
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &status, &date)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying invoice by id: %w", err)
	}

	inv.Status = domain.InvoiceStatus(status)
	inv.Date = domain.FormatDate(date)

	return &inv, nil
}

// FindAllWithCustomers lists every invoice with its customer, newest first.
func (r *MySQLInvoiceRepository) FindAllWithCustomers(ctx context.Context) ([]domain.InvoiceRow, error) {
	query := `
		SELECT invoices.id, invoices.customer_id, invoices.amount, invoices.status, invoices.date,
		       customers.name, customers.email
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.InvoiceRow
	for rows.Next() {
		var (
			row    domain.InvoiceRow
			status string
			date   time.Time
		)
		err := rows.Scan(
			&row.ID, &row.CustomerID, &row.AmountCents, &status, &date,
			&row.CustomerName, &row.CustomerEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice row: %w", err)
		}
		row.Status = domain.InvoiceStatus(status)
		row.Date = domain.FormatDate(date)
		invoices = append(invoices, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}
