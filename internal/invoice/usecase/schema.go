package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"

	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgAmountTooLarge = "Please enter a smaller amount."
	MsgSelectStatus   = "Please select an invoice status."
)

// maxAmountCents is the largest value the invoices.amount INT column holds.
const maxAmountCents = 1<<31 - 1

var hundred = decimal.NewFromInt(100)

// InvoiceForm is the raw, unvalidated form submission.
type InvoiceForm struct {
	CustomerID string
	Amount     string
	Status     string
}

type ValidInvoice struct {
	CustomerID  string
	AmountCents int64
	Status      domain.InvoiceStatus
}

// ValidateInvoiceForm checks every field and reports all failures at once.
// An empty amount coerces to zero and fails the positivity rule.
func ValidateInvoiceForm(form InvoiceForm) (ValidInvoice, apperrors.FieldErrors) {
	errs := apperrors.FieldErrors{}
	var valid ValidInvoice

	if form.CustomerID == "" {
		errs.Add(FieldCustomerID, MsgSelectCustomer)
	}
	valid.CustomerID = form.CustomerID

	cents, msg := amountToCents(form.Amount)
	if msg != "" {
		errs.Add(FieldAmount, msg)
	}
	valid.AmountCents = cents

	status := domain.InvoiceStatus(form.Status)
	if !status.Valid() {
		errs.Add(FieldStatus, MsgSelectStatus)
	}
	valid.Status = status

	if len(errs) > 0 {
		return ValidInvoice{}, errs
	}
	return valid, nil
}

// amountToCents multiplies the dollar amount by 100 exactly and rounds half
// away from zero to a whole cent. A sub-cent amount that rounds to zero is
// rejected like any other non-positive amount.
func amountToCents(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, MsgAmountPositive
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return 0, MsgAmountPositive
	}

	cents := amount.Mul(hundred).Round(0)
	if !cents.IsPositive() {
		return 0, MsgAmountPositive
	}
	if cents.GreaterThan(decimal.NewFromInt(maxAmountCents)) {
		return 0, MsgAmountTooLarge
	}
	return cents.IntPart(), ""
}
