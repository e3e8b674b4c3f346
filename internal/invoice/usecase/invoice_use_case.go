package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
)

// ListPath is the invoice list page. Every successful write invalidates it
// and create/update send the caller back to it.
const ListPath = "/dashboard/invoices"

const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateDatabaseError = "Database Error: Failed to Create Invoice."
	MsgUpdateDatabaseError = "Database Error: Failed to Update Invoice."
	MsgDeleteDatabaseError = "Database Error: Failed to Delete Invoice."
	MsgInvoiceNotFound     = "Invoice not found."
	MsgInvoiceDeleted      = "Invoice deleted successfully"
	MsgListDatabaseError   = "Database Error: Failed to Fetch Invoices."
)

type InvoiceRepository interface {
	Insert(ctx context.Context, inv domain.Invoice) error
	Update(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	FindAllWithCustomers(ctx context.Context) ([]domain.InvoiceRow, error)
}

type Revalidator interface {
	Revalidate(path string)
}

// Outcome is the success half of every mutation. The failure half is always
// one of *errors.ValidationError, *errors.StorageError or
// *errors.NotFoundError.
type Outcome struct {
	RedirectTo string
	Message    string
	InvoiceID  string
}

type InvoiceUseCase struct {
	repo        InvoiceRepository
	revalidator Revalidator
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time
}

func NewInvoiceUseCase(repo InvoiceRepository, revalidator Revalidator, logger *zap.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:        repo,
		revalidator: revalidator,
		logger:      logger,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, form InvoiceForm) (Outcome, error) {
	id := uc.newID()
	date := domain.FormatDate(uc.now())

	valid, fieldErrs := ValidateInvoiceForm(form)
	if fieldErrs != nil {
		uc.logger.Info("create invoice validation failed", zap.Any("fields", fieldErrs))
		return Outcome{}, apperrors.NewFieldValidationError(MsgCreateMissingFields, fieldErrs)
	}

	inv := domain.Invoice{
		ID:          id,
		CustomerID:  valid.CustomerID,
		AmountCents: valid.AmountCents,
		Status:      valid.Status,
		Date:        date,
	}

	if err := uc.repo.Insert(ctx, inv); err != nil {
		uc.logWriteError("database error creating invoice", id, err)
		return Outcome{}, apperrors.NewStorageError(MsgCreateDatabaseError, err)
	}

	uc.logger.Info("invoice created", zap.String("invoiceId", id), zap.Int64("amountCents", inv.AmountCents))
	uc.revalidator.Revalidate(ListPath)

	return Outcome{RedirectTo: ListPath, InvoiceID: id}, nil
}

func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, form InvoiceForm) (Outcome, error) {
	valid, fieldErrs := ValidateInvoiceForm(form)
	if fieldErrs != nil {
		uc.logger.Info("update invoice validation failed", zap.String("invoiceId", id), zap.Any("fields", fieldErrs))
		return Outcome{}, apperrors.NewFieldValidationError(MsgUpdateMissingFields, fieldErrs)
	}

	err := uc.repo.Update(ctx, id, valid.CustomerID, valid.AmountCents, valid.Status)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			uc.logger.Warn("update of missing invoice", zap.String("invoiceId", id))
			return Outcome{}, apperrors.NewNotFoundError(MsgInvoiceNotFound)
		}
		uc.logWriteError("database error updating invoice", id, err)
		return Outcome{}, apperrors.NewStorageError(MsgUpdateDatabaseError, err)
	}

	uc.logger.Info("invoice updated", zap.String("invoiceId", id))
	uc.revalidator.Revalidate(ListPath)

	return Outcome{RedirectTo: ListPath, InvoiceID: id}, nil
}

func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id string) (Outcome, error) {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			uc.logger.Warn("delete of missing invoice", zap.String("invoiceId", id))
			return Outcome{}, apperrors.NewNotFoundError(MsgInvoiceNotFound)
		}
		uc.logger.Error("failed to delete invoice", zap.String("invoiceId", id), zap.Error(err))
		return Outcome{}, apperrors.NewStorageError(MsgDeleteDatabaseError, err)
	}

	uc.logger.Info("invoice deleted", zap.String("invoiceId", id))
	uc.revalidator.Revalidate(ListPath)

	return Outcome{Message: MsgInvoiceDeleted, InvoiceID: id}, nil
}

// logWriteError downgrades writes that pointed at a missing customer, which
// is a client problem rather than an outage.
func (uc *InvoiceUseCase) logWriteError(msg, id string, err error) {
	fields := []zap.Field{zap.String("invoiceId", id), zap.Error(err)}
	if errors.Is(err, domain.ErrUnknownCustomer) {
		uc.logger.Warn(msg, append(fields, zap.Bool("unknownCustomer", true))...)
		return
	}
	uc.logger.Error(msg, fields...)
}

func (uc *InvoiceUseCase) ListInvoices(ctx context.Context) ([]domain.InvoiceRow, error) {
	rows, err := uc.repo.FindAllWithCustomers(ctx)
	if err != nil {
		uc.logger.Error("database error listing invoices", zap.Error(err))
		return nil, apperrors.NewStorageError(MsgListDatabaseError, err)
	}
	return rows, nil
}

func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(MsgInvoiceNotFound)
		}
		uc.logger.Error("database error fetching invoice", zap.String("invoiceId", id), zap.Error(err))
		return nil, apperrors.NewStorageError(MsgListDatabaseError, err)
	}
	return inv, nil
}
