package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"dashboard/internal/dto"
	apperrors "dashboard/internal/errors"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]dto.ProductDTO, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error)
}

// APIController serves the JSON product endpoints the product pages read from.
type APIController struct {
	useCase ProductUseCase
	logger  *zap.Logger
}

func NewAPIController(useCase ProductUseCase, logger *zap.Logger) *APIController {
	return &APIController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *APIController) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.useCase.ListProducts(r.Context())
	if err != nil {
		c.logger.Error("list products failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ProductListResponse{
		Data: dto.ProductList{Products: products},
	})
}

func (c *APIController) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	product, err := c.useCase.CreateProduct(r.Context(), req)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeValidationError(w, ve.Message, ve.Details...)
			return
		}
		c.logger.Error("create product failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.ProductResponse{Data: *product})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *APIController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *APIController) writeInternalError(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *APIController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
