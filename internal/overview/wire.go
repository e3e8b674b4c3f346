package overview

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/web"
)

func NewModule(db *sql.DB, renderer *web.Renderer, logger *zap.Logger) *Controller {
	return NewController(NewMySQLRepository(db), renderer, logger)
}
