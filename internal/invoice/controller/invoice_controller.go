package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
	"dashboard/internal/invoice/usecase"
	"dashboard/internal/web"
)

type InvoiceUseCase interface {
	CreateInvoice(ctx context.Context, form usecase.InvoiceForm) (usecase.Outcome, error)
	UpdateInvoice(ctx context.Context, id string, form usecase.InvoiceForm) (usecase.Outcome, error)
	DeleteInvoice(ctx context.Context, id string) (usecase.Outcome, error)
	ListInvoices(ctx context.Context) ([]domain.InvoiceRow, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

type CustomerLister interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type InvoiceController struct {
	useCase   InvoiceUseCase
	customers CustomerLister
	renderer  *web.Renderer
	pages     web.PageStore
	logger    *zap.Logger
}

func NewInvoiceController(
	useCase InvoiceUseCase,
	customers CustomerLister,
	renderer *web.Renderer,
	pages web.PageStore,
	logger *zap.Logger,
) *InvoiceController {
	return &InvoiceController{
		useCase:   useCase,
		customers: customers,
		renderer:  renderer,
		pages:     pages,
		logger:    logger,
	}
}

func (c *InvoiceController) List(w http.ResponseWriter, r *http.Request) {
	err := c.renderer.Cached(w, c.pages, usecase.ListPath, "invoices", func() (interface{}, error) {
		rows, err := c.useCase.ListInvoices(r.Context())
		if err != nil {
			return nil, err
		}
		return web.InvoicesView{Invoices: rows}, nil
	})
	if err != nil {
		c.logger.Error("rendering invoice list failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Something went wrong!", usecase.MsgListDatabaseError)
	}
}

func (c *InvoiceController) CreateForm(w http.ResponseWriter, r *http.Request) {
	view, ok := c.formView(w, r, web.InvoiceFormView{
		Title:  "Create Invoice",
		Action: "/dashboard/invoices/create",
		Submit: "Create Invoice",
	})
	if !ok {
		return
	}
	c.renderer.Page(w, http.StatusOK, "invoice_form", view)
}

func (c *InvoiceController) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := c.parseForm(w, r)
	if !ok {
		return
	}

	out, err := c.useCase.CreateInvoice(r.Context(), form)
	if err != nil {
		c.renderFormFailure(w, r, err, web.InvoiceFormView{
			Title:  "Create Invoice",
			Action: "/dashboard/invoices/create",
			Submit: "Create Invoice",
		}, form)
		return
	}

	http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
}

func (c *InvoiceController) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inv, err := c.useCase.GetInvoice(r.Context(), id)
	if err != nil {
		c.renderFailure(w, err)
		return
	}

	view, ok := c.formView(w, r, editView(id))
	if !ok {
		return
	}
	view.CustomerID = inv.CustomerID
	view.Amount = centsToInput(inv.AmountCents)
	view.Status = string(inv.Status)

	c.renderer.Page(w, http.StatusOK, "invoice_form", view)
}

func (c *InvoiceController) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	form, ok := c.parseForm(w, r)
	if !ok {
		return
	}

	out, err := c.useCase.UpdateInvoice(r.Context(), id, form)
	if err != nil {
		c.renderFormFailure(w, r, err, editView(id), form)
		return
	}

	http.Redirect(w, r, out.RedirectTo, http.StatusSeeOther)
}

// Delete handles the list page's delete button and returns to the list.
func (c *InvoiceController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := c.useCase.DeleteInvoice(r.Context(), id); err != nil {
		c.renderFailure(w, err)
		return
	}

	http.Redirect(w, r, usecase.ListPath, http.StatusSeeOther)
}

func (c *InvoiceController) DeleteAPI(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	id := chi.URLParam(r, "id")

	out, err := c.useCase.DeleteInvoice(r.Context(), id)
	if err != nil {
		status, message := statusFor(err)
		logger.Warn("delete invoice failed", zap.String("invoiceId", id), zap.Int("status", status))
		c.writeJSON(w, status, errorResponse{TraceID: traceID, Error: message})
		return
	}

	c.writeJSON(w, http.StatusOK, messageResponse{Message: out.Message})
}

func editView(id string) web.InvoiceFormView {
	return web.InvoiceFormView{
		Title:  "Edit Invoice",
		Action: "/dashboard/invoices/" + id + "/edit",
		Submit: "Edit Invoice",
	}
}

func (c *InvoiceController) parseForm(w http.ResponseWriter, r *http.Request) (usecase.InvoiceForm, bool) {
	if err := r.ParseForm(); err != nil {
		c.logger.Warn("invalid form body", zap.Error(err))
		c.renderer.Error(w, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return usecase.InvoiceForm{}, false
	}

	return usecase.InvoiceForm{
		CustomerID: r.PostForm.Get("customerId"),
		Amount:     r.PostForm.Get("amount"),
		Status:     r.PostForm.Get("status"),
	}, true
}

// formView fills in the customer select. It writes an error page and returns
// false when customers cannot be loaded.
func (c *InvoiceController) formView(w http.ResponseWriter, r *http.Request, view web.InvoiceFormView) (web.InvoiceFormView, bool) {
	customers, err := c.customers.FindAll(r.Context())
	if err != nil {
		c.logger.Error("fetching customers failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Something went wrong!", "Failed to fetch customers.")
		return view, false
	}
	view.Customers = customers
	return view, true
}

// renderFormFailure sends the submitted values back to the form with the
// messages carried by err.
func (c *InvoiceController) renderFormFailure(w http.ResponseWriter, r *http.Request, err error, view web.InvoiceFormView, form usecase.InvoiceForm) {
	var status int
	if ve, ok := apperrors.IsValidationError(err); ok {
		status = http.StatusUnprocessableEntity
		view.State = web.FormState{Errors: ve.Fields, Message: ve.Message}
	} else if se, ok := apperrors.IsStorageError(err); ok {
		status = http.StatusInternalServerError
		view.State = web.FormState{Message: se.Message}
	} else {
		c.renderFailure(w, err)
		return
	}

	view, ok := c.formView(w, r, view)
	if !ok {
		return
	}
	view.CustomerID = form.CustomerID
	view.Amount = form.Amount
	view.Status = form.Status

	c.renderer.Page(w, status, "invoice_form", view)
}

func (c *InvoiceController) renderFailure(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	if status == http.StatusNotFound {
		c.renderer.Error(w, status, "404 Not Found", "Could not find the requested invoice.")
		return
	}
	c.renderer.Error(w, status, "Something went wrong!", message)
}

func statusFor(err error) (int, string) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		return http.StatusNotFound, nf.Message
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		return http.StatusUnprocessableEntity, ve.Message
	}
	if se, ok := apperrors.IsStorageError(err); ok {
		return http.StatusInternalServerError, se.Message
	}
	return http.StatusInternalServerError, "an unexpected error occurred"
}

// centsToInput renders stored cents the way the amount input expects them.
func centsToInput(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	TraceID string `json:"traceId"`
	Error   string `json:"error"`
}

func (c *InvoiceController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
