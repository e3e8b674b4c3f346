package query

import (
	"database/sql"

	"go.uber.org/zap"

	"dashboard/internal/config"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Controller {
	return NewController(NewMySQLRepository(db), cfg.Query.Amount, logger)
}
