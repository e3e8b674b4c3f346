package invoice

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/cache"
	customerrepo "dashboard/internal/customer/repository"
	"dashboard/internal/invoice/controller"
	invoicerepo "dashboard/internal/invoice/repository"
	"dashboard/internal/invoice/usecase"
	"dashboard/internal/web"
)

func NewModule(db *sql.DB, pages *cache.Pages, renderer *web.Renderer, logger *zap.Logger) *controller.InvoiceController {
	invoiceRepo := invoicerepo.NewMySQLInvoiceRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)

	uc := usecase.NewInvoiceUseCase(invoiceRepo, pages, logger)

	return controller.NewInvoiceController(uc, customerRepo, renderer, pages, logger)
}
