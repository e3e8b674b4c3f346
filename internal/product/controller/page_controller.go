package controller

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dashboard/internal/apiclient"
	"dashboard/internal/dto"
	apperrors "dashboard/internal/errors"
	"dashboard/internal/product/usecase"
	"dashboard/internal/web"
)

const MsgPriceInvalid = "Price must be a number."

// PageController renders the product pages. The list is read back through
// the JSON API with the caller's session token.
type PageController struct {
	useCase  ProductUseCase
	api      *apiclient.Client
	renderer *web.Renderer
	pages    web.PageStore
	logger   *zap.Logger
}

func NewPageController(
	useCase ProductUseCase,
	api *apiclient.Client,
	renderer *web.Renderer,
	pages web.PageStore,
	logger *zap.Logger,
) *PageController {
	return &PageController{
		useCase:  useCase,
		api:      api,
		renderer: renderer,
		pages:    pages,
		logger:   logger,
	}
}

func (c *PageController) List(w http.ResponseWriter, r *http.Request) {
	err := c.renderer.Cached(w, c.pages, usecase.ListPath, "products", func() (interface{}, error) {
		client := c.api.WithTokenSource(apiclient.CookieTokenSource{Request: r})
		products, err := apiclient.Fetch[dto.ProductDTO](r.Context(), client, "/products")
		if err != nil {
			return nil, err
		}

		views := make([]web.ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, web.ProductView{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
			})
		}
		return web.ProductsView{Products: views}, nil
	})
	if err != nil {
		c.logger.Error("loading product page failed", zap.Error(err))
		c.renderer.Error(w, http.StatusInternalServerError, "Error loading products", "The product list could not be loaded.")
	}
}

func (c *PageController) CreateForm(w http.ResponseWriter, r *http.Request) {
	c.renderer.Page(w, http.StatusOK, "product_form", web.ProductFormView{})
}

func (c *PageController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.logger.Warn("invalid form body", zap.Error(err))
		c.renderer.Error(w, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}

	view := web.ProductFormView{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
		Price:       r.PostForm.Get("price"),
	}

	req := dto.CreateProductRequest{Name: view.Name, Description: view.Description}
	if raw := strings.TrimSpace(view.Price); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			view.State = web.FormState{
				Errors:  map[string][]string{"price": {MsgPriceInvalid}},
				Message: usecase.MsgInvalidProduct,
			}
			c.renderer.Page(w, http.StatusUnprocessableEntity, "product_form", view)
			return
		}
		price := d.InexactFloat64()
		req.Price = &price
	}

	if _, err := c.useCase.CreateProduct(r.Context(), req); err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			view.State = web.FormState{Errors: ve.Fields, Message: ve.Message}
			c.renderer.Page(w, http.StatusUnprocessableEntity, "product_form", view)
			return
		}
		message := "Something went wrong."
		if se, ok := apperrors.IsStorageError(err); ok {
			message = se.Message
		}
		view.State = web.FormState{Message: message}
		c.renderer.Page(w, http.StatusInternalServerError, "product_form", view)
		return
	}

	http.Redirect(w, r, usecase.ListPath, http.StatusSeeOther)
}
