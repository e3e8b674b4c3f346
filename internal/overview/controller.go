package overview

import (
	"net/http"

	"go.uber.org/zap"

	"dashboard/internal/domain"
	"dashboard/internal/web"
)

const latestInvoicesLimit = 5

type Controller struct {
	repo     Repository
	renderer *web.Renderer
	logger   *zap.Logger
}

func NewController(repo Repository, renderer *web.Renderer, logger *zap.Logger) *Controller {
	return &Controller{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

func (c *Controller) HandleOverview(w http.ResponseWriter, r *http.Request) {
	data, err := c.repo.FetchCardData(r.Context())
	if err != nil {
		c.logger.Error("fetching card data failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Something went wrong!", "Failed to fetch card data.")
		return
	}

	latest, err := c.repo.FetchLatestInvoices(r.Context(), latestInvoicesLimit)
	if err != nil {
		c.logger.Error("fetching latest invoices failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Something went wrong!", "Failed to fetch the latest invoices.")
		return
	}

	c.renderer.Page(w, http.StatusOK, "overview", web.OverviewView{
		NumberOfInvoices:     data.NumberOfInvoices,
		NumberOfCustomers:    data.NumberOfCustomers,
		TotalPaidInvoices:    domain.FormatCurrency(data.TotalPaidCents),
		TotalPendingInvoices: domain.FormatCurrency(data.TotalPendingCents),
		LatestInvoices:       latest,
	})
}
