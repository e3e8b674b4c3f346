package product

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/apiclient"
	"dashboard/internal/cache"
	"dashboard/internal/config"
	"dashboard/internal/product/controller"
	"dashboard/internal/product/repository"
	"dashboard/internal/product/usecase"
	"dashboard/internal/web"
)

type Module struct {
	API   *controller.APIController
	Pages *controller.PageController
}

func NewModule(db *sql.DB, cfg *config.Config, pages *cache.Pages, renderer *web.Renderer, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)
	uc := usecase.NewProductUseCase(repo, pages, logger)
	api := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	return &Module{
		API:   controller.NewAPIController(uc, logger),
		Pages: controller.NewPageController(uc, api, renderer, pages, logger),
	}
}
