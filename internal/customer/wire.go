package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/customer/controller"
	"dashboard/internal/customer/repository"
	"dashboard/internal/web"
)

func NewModule(db *sql.DB, renderer *web.Renderer, logger *zap.Logger) *controller.CustomerController {
	return controller.NewCustomerController(repository.NewMySQLCustomerRepository(db), renderer, logger)
}
