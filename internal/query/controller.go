package query

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const MsgQueryFailed = "There was a problem retrieving data from the database."

type Controller struct {
	repo   Repository
	amount int64
	logger *zap.Logger
}

// NewController serves the fixed amount lookup. amount is the value every
// request filters on.
func NewController(repo Repository, amount int64, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		amount: amount,
		logger: logger,
	}
}

func (c *Controller) HandleQuery(w http.ResponseWriter, r *http.Request) {
	rows, err := c.repo.FindInvoicesByAmount(r.Context(), c.amount)
	if err != nil {
		c.logger.Error("invoice amount query failed", zap.Int64("amount", c.amount), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": MsgQueryFailed})
		return
	}

	if rows == nil {
		rows = []InvoiceAmount{}
	}
	c.writeJSON(w, http.StatusOK, rows)
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
