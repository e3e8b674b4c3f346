package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"dashboard/internal/domain"
	"dashboard/internal/web"
)

type CustomerLister interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type CustomerController struct {
	customers CustomerLister
	renderer  *web.Renderer
	logger    *zap.Logger
}

func NewCustomerController(customers CustomerLister, renderer *web.Renderer, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		customers: customers,
		renderer:  renderer,
		logger:    logger,
	}
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	customers, err := c.customers.FindAll(r.Context())
	if err != nil {
		c.logger.Error("fetching customers failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Something went wrong!", "Failed to fetch customers.")
		return
	}

	c.renderer.Page(w, http.StatusOK, "customers", web.CustomersView{Customers: customers})
}
