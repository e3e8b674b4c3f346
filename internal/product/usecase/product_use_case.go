package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"dashboard/internal/domain"
	"dashboard/internal/dto"
	apperrors "dashboard/internal/errors"
)

// ListPath is the product list page, invalidated after every insert.
const ListPath = "/dashboard/products"

const (
	MsgInvalidProduct      = "Invalid product data."
	MsgNameRequired        = "Name is required."
	MsgDescriptionRequired = "Description is required."
	MsgPriceRequired       = "Price is required."
	MsgPriceNegative       = "Price must be zero or greater."
	MsgCreateDatabaseError = "Database Error: Failed to Create Product."
	MsgListDatabaseError   = "Database Error: Failed to Fetch Products."
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (int, error)
}

type Revalidator interface {
	Revalidate(path string)
}

type ProductUseCase struct {
	repo        Repository
	revalidator Revalidator
	logger      *zap.Logger
	now         func() time.Time
}

func NewProductUseCase(repo Repository, revalidator Revalidator, logger *zap.Logger) *ProductUseCase {
	return &ProductUseCase{
		repo:        repo,
		revalidator: revalidator,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	found, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("database error listing products", zap.Error(err))
		return nil, apperrors.NewStorageError(MsgListDatabaseError, err)
	}

	products := make([]dto.ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, toDTO(p))
	}

	return products, nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if err := ValidateProduct(req); err != nil {
		uc.logger.Info("create product validation failed", zap.Error(err))
		return nil, err
	}

	p := domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		CreatedAt:   uc.now(),
	}

	id, err := uc.repo.Insert(ctx, p)
	if err != nil {
		uc.logger.Error("database error creating product", zap.Error(err))
		return nil, apperrors.NewStorageError(MsgCreateDatabaseError, err)
	}
	p.ID = id

	uc.logger.Info("product created", zap.Int("productId", id))
	uc.revalidator.Revalidate(ListPath)

	out := toDTO(p)
	return &out, nil
}

// ValidateProduct reports every invalid field in one ValidationError.
func ValidateProduct(req dto.CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: MsgNameRequired})
	}
	if strings.TrimSpace(req.Description) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: MsgDescriptionRequired})
	}
	switch {
	case req.Price == nil:
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: MsgPriceRequired})
	case *req.Price < 0:
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: MsgPriceNegative})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError(MsgInvalidProduct, details...)
	}
	return nil
}

func toDTO(p domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}
