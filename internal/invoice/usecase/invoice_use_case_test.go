package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
)

// Mock implementations
type mockInvoiceRepository struct {
	InsertFunc               func(ctx context.Context, inv domain.Invoice) error
	UpdateFunc               func(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error
	DeleteFunc               func(ctx context.Context, id string) error
	FindByIDFunc             func(ctx context.Context, id string) (*domain.Invoice, error)
	FindAllWithCustomersFunc func(ctx context.Context) ([]domain.InvoiceRow, error)
}

func (m *mockInvoiceRepository) Insert(ctx context.Context, inv domain.Invoice) error {
	return m.InsertFunc(ctx, inv)
}

func (m *mockInvoiceRepository) Update(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	return m.UpdateFunc(ctx, id, customerID, amountCents, status)
}

func (m *mockInvoiceRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockInvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockInvoiceRepository) FindAllWithCustomers(ctx context.Context) ([]domain.InvoiceRow, error) {
	return m.FindAllWithCustomersFunc(ctx)
}

type recordingRevalidator struct {
	paths []string
}

func (r *recordingRevalidator) Revalidate(path string) {
	r.paths = append(r.paths, path)
}

func newTestInvoiceUseCase(repo InvoiceRepository, rv Revalidator) *InvoiceUseCase {
	uc := NewInvoiceUseCase(repo, rv, zap.NewNop())
	uc.newID = func() string { return "3958dc9e-712f-4377-85e9-fec4b6a6442a" }
	uc.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }
	return uc
}

func failOnWrite(t *testing.T) *mockInvoiceRepository {
	return &mockInvoiceRepository{
		InsertFunc: func(ctx context.Context, inv domain.Invoice) error {
			t.Fatal("insert must not be called")
			return nil
		},
		UpdateFunc: func(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
			t.Fatal("update must not be called")
			return nil
		},
	}
}

// Create

func TestCreateInvoice_Success(t *testing.T) {
	var stored domain.Invoice
	repo := &mockInvoiceRepository{
		InsertFunc: func(ctx context.Context, inv domain.Invoice) error {
			stored = inv
			return nil
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	out, err := uc.CreateInvoice(context.Background(), InvoiceForm{
		CustomerID: "cus-1",
		Amount:     "150.25",
		Status:     "pending",
	})

	require.NoError(t, err)
	assert.Equal(t, ListPath, out.RedirectTo)
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", out.InvoiceID)

	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", stored.ID)
	assert.Equal(t, "cus-1", stored.CustomerID)
	assert.Equal(t, int64(15025), stored.AmountCents)
	assert.Equal(t, domain.InvoiceStatusPending, stored.Status)
	assert.Equal(t, "2026-10-14", stored.Date)

	assert.Equal(t, []string{ListPath}, rv.paths)
}

func TestCreateInvoice_StoresAmountTimesHundred(t *testing.T) {
	amounts := map[string]int64{"1": 100, "0.01": 1, "99.99": 9999, "1234.5": 123450}

	for amount, cents := range amounts {
		t.Run(amount, func(t *testing.T) {
			var got int64
			repo := &mockInvoiceRepository{
				InsertFunc: func(ctx context.Context, inv domain.Invoice) error {
					got = inv.AmountCents
					return nil
				},
			}
			uc := newTestInvoiceUseCase(repo, &recordingRevalidator{})

			_, err := uc.CreateInvoice(context.Background(), InvoiceForm{CustomerID: "c", Amount: amount, Status: "paid"})

			require.NoError(t, err)
			assert.Equal(t, cents, got)
		})
	}
}

func TestCreateInvoice_NonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10"} {
		t.Run(amount, func(t *testing.T) {
			rv := &recordingRevalidator{}
			uc := newTestInvoiceUseCase(failOnWrite(t), rv)

			_, err := uc.CreateInvoice(context.Background(), InvoiceForm{CustomerID: "cus-1", Amount: amount, Status: "paid"})

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, MsgCreateMissingFields, ve.Message)
			assert.Contains(t, ve.Fields[FieldAmount], MsgAmountPositive)
			assert.Empty(t, rv.paths)
		})
	}
}

func TestCreateInvoice_MissingCustomer(t *testing.T) {
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(failOnWrite(t), rv)

	_, err := uc.CreateInvoice(context.Background(), InvoiceForm{Amount: "10", Status: "paid"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields[FieldCustomerID], MsgSelectCustomer)
	assert.Empty(t, rv.paths)
}

func TestCreateInvoice_DatabaseError(t *testing.T) {
	dbErr := errors.New("Error 1452: Cannot add or update a child row")
	repo := &mockInvoiceRepository{
		InsertFunc: func(ctx context.Context, inv domain.Invoice) error {
			return dbErr
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	out, err := uc.CreateInvoice(context.Background(), InvoiceForm{CustomerID: "cus-1", Amount: "10", Status: "paid"})

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, MsgCreateDatabaseError, se.Message)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, Outcome{}, out)
	assert.Empty(t, rv.paths)
}

// Update

func TestUpdateInvoice_Success(t *testing.T) {
	var (
		gotID, gotCustomer string
		gotCents           int64
		gotStatus          domain.InvoiceStatus
	)
	repo := &mockInvoiceRepository{
		UpdateFunc: func(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
			gotID, gotCustomer, gotCents, gotStatus = id, customerID, amountCents, status
			return nil
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	out, err := uc.UpdateInvoice(context.Background(), "inv-1", InvoiceForm{CustomerID: "cus-2", Amount: "42.10", Status: "paid"})

	require.NoError(t, err)
	assert.Equal(t, ListPath, out.RedirectTo)
	assert.Equal(t, "inv-1", gotID)
	assert.Equal(t, "cus-2", gotCustomer)
	assert.Equal(t, int64(4210), gotCents)
	assert.Equal(t, domain.InvoiceStatusPaid, gotStatus)
	assert.Equal(t, []string{ListPath}, rv.paths)
}

func TestUpdateInvoice_ValidationReturnsStructuredError(t *testing.T) {
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(failOnWrite(t), rv)

	_, err := uc.UpdateInvoice(context.Background(), "inv-1", InvoiceForm{CustomerID: "cus-2", Amount: "x", Status: "late"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MsgUpdateMissingFields, ve.Message)
	assert.Contains(t, ve.Fields[FieldAmount], MsgAmountPositive)
	assert.Contains(t, ve.Fields[FieldStatus], MsgSelectStatus)
	assert.Empty(t, rv.paths)
}

func TestUpdateInvoice_DatabaseError(t *testing.T) {
	repo := &mockInvoiceRepository{
		UpdateFunc: func(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
			return errors.New("lock wait timeout")
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	_, err := uc.UpdateInvoice(context.Background(), "inv-1", InvoiceForm{CustomerID: "cus-2", Amount: "1", Status: "paid"})

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, MsgUpdateDatabaseError, se.Message)
	assert.Empty(t, rv.paths)
}

func TestUpdateInvoice_NotFound(t *testing.T) {
	repo := &mockInvoiceRepository{
		UpdateFunc: func(ctx context.Context, id string, customerID string, amountCents int64, status domain.InvoiceStatus) error {
			return apperrors.NewNotFoundError("invoice with id missing not found")
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	_, err := uc.UpdateInvoice(context.Background(), "missing", InvoiceForm{CustomerID: "cus-2", Amount: "1", Status: "paid"})

	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvoiceNotFound, nf.Message)
	assert.Empty(t, rv.paths)
}

// Delete

func TestDeleteInvoice_Success(t *testing.T) {
	var deleted string
	repo := &mockInvoiceRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	out, err := uc.DeleteInvoice(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, MsgInvoiceDeleted, out.Message)
	assert.Empty(t, out.RedirectTo)
	assert.Equal(t, "inv-1", deleted)
	assert.Equal(t, []string{ListPath}, rv.paths)
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	repo := &mockInvoiceRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NewNotFoundError("invoice with id missing not found")
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	_, err := uc.DeleteInvoice(context.Background(), "missing")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Empty(t, rv.paths)
}

func TestDeleteInvoice_DatabaseError(t *testing.T) {
	repo := &mockInvoiceRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return errors.New("connection refused")
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	_, err := uc.DeleteInvoice(context.Background(), "inv-1")

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, MsgDeleteDatabaseError, se.Message)
	assert.Empty(t, rv.paths)
}

// Reads

func TestListInvoices_DatabaseError(t *testing.T) {
	repo := &mockInvoiceRepository{
		FindAllWithCustomersFunc: func(ctx context.Context) ([]domain.InvoiceRow, error) {
			return nil, errors.New("boom")
		},
	}
	uc := newTestInvoiceUseCase(repo, &recordingRevalidator{})

	rows, err := uc.ListInvoices(context.Background())

	assert.Nil(t, rows)
	_, ok := apperrors.IsStorageError(err)
	assert.True(t, ok)
}

func TestGetInvoice_NotFound(t *testing.T) {
	repo := &mockInvoiceRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return nil, apperrors.NewNotFoundError("invoice with id x not found")
		},
	}
	uc := newTestInvoiceUseCase(repo, &recordingRevalidator{})

	inv, err := uc.GetInvoice(context.Background(), "x")

	assert.Nil(t, inv)
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvoiceNotFound, nf.Message)
}

func TestCreateInvoice_UnknownCustomerIsStorageError(t *testing.T) {
	repo := &mockInvoiceRepository{
		InsertFunc: func(ctx context.Context, inv domain.Invoice) error {
			return fmt.Errorf("inserting invoice: %w", domain.ErrUnknownCustomer)
		},
	}
	rv := &recordingRevalidator{}
	uc := newTestInvoiceUseCase(repo, rv)

	_, err := uc.CreateInvoice(context.Background(), InvoiceForm{CustomerID: "ghost", Amount: "10", Status: "paid"})

	se, ok := apperrors.IsStorageError(err)
	require.True(t, ok)
	assert.Equal(t, MsgCreateDatabaseError, se.Message)
	assert.ErrorIs(t, err, domain.ErrUnknownCustomer)
	assert.Empty(t, rv.paths)
}
