package web

import "dashboard/internal/domain"

// FormState is what a failed submission hands back to its form: messages per
// field plus an optional summary line.
type FormState struct {
	Errors  map[string][]string
	Message string
}

func (s FormState) Has(field string) bool {
	return len(s.Errors[field]) > 0
}

type LoginView struct {
	Email        string
	ErrorMessage string
}

type OverviewView struct {
	NumberOfInvoices     int
	NumberOfCustomers    int
	TotalPaidInvoices    string
	TotalPendingInvoices string
	LatestInvoices       []domain.InvoiceRow
}

type InvoicesView struct {
	Invoices []domain.InvoiceRow
}

type InvoiceFormView struct {
	Title      string
	Action     string
	Submit     string
	Customers  []domain.Customer
	CustomerID string
	Amount     string
	Status     string
	State      FormState
}

type CustomersView struct {
	Customers []domain.Customer
}

type ProductView struct {
	ID          int
	Name        string
	Description string
	Price       float64
}

type ProductsView struct {
	Products []ProductView
}

type ProductFormView struct {
	Name        string
	Description string
	Price       string
	State       FormState
}

type ErrorView struct {
	Title   string
	Message string
}
