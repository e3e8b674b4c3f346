package domain

import (
	"errors"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// ErrUnknownCustomer marks a write that referenced a customer id with no row.
var ErrUnknownCustomer = errors.New("customer does not exist")

// DateLayout is the ISO calendar-date form invoices are stored and shown in.
const DateLayout = "2006-01-02"

// Invoice amounts are integer cents. ID and Date never change after creation.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}

// InvoiceRow is an invoice joined with the customer it bills.
type InvoiceRow struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
