package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashboard/internal/apiclient"
	"dashboard/internal/dto"
	apperrors "dashboard/internal/errors"
	"dashboard/internal/product/usecase"
	"dashboard/internal/web"
)

type mockProductUseCase struct {
	ListProductsFunc  func(ctx context.Context) ([]dto.ProductDTO, error)
	CreateProductFunc func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error)
}

func (m *mockProductUseCase) ListProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	return m.ListProductsFunc(ctx)
}

func (m *mockProductUseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
	return m.CreateProductFunc(ctx, req)
}

type mapStore map[string][]byte

func (m mapStore) Get(path string) ([]byte, bool) {
	b, ok := m[path]
	return b, ok
}

func (m mapStore) Generation(string) uint64 { return 0 }

func (m mapStore) SetIfGeneration(path string, _ uint64, body []byte) bool {
	m[path] = body
	return true
}

func invalidProduct() error {
	return apperrors.NewValidationError(usecase.MsgInvalidProduct, apperrors.ValidationDetail{
		Field:   "name",
		Message: usecase.MsgNameRequired,
	})
}

// API

func TestHandleListProducts_WrapsInDataEnvelope(t *testing.T) {
	c := NewAPIController(&mockProductUseCase{
		ListProductsFunc: func(ctx context.Context) ([]dto.ProductDTO, error) {
			return []dto.ProductDTO{{ID: 1, Name: "Mug", Description: "Ceramic", Price: 12.5}}, nil
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Products, 1)
	assert.Equal(t, "Mug", body.Data.Products[0].Name)
}

func TestHandleListProducts_Error(t *testing.T) {
	c := NewAPIController(&mockProductUseCase{
		ListProductsFunc: func(ctx context.Context) ([]dto.ProductDTO, error) {
			return nil, errors.New("db down")
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestHandleCreateProduct_Created(t *testing.T) {
	var got dto.CreateProductRequest
	c := NewAPIController(&mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			got = req
			return &dto.ProductDTO{ID: 5, Name: req.Name, Description: req.Description, Price: *req.Price}, nil
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleCreateProduct(rec, httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Mug","description":"Ceramic","price":12.5}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Mug", got.Name)
	require.NotNil(t, got.Price)
	assert.Equal(t, 12.5, *got.Price)

	var body dto.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Data.ID)
}

func TestHandleCreateProduct_InvalidJSON(t *testing.T) {
	c := NewAPIController(&mockProductUseCase{}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleCreateProduct(rec, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body validationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	assert.Equal(t, "body", body.Details[0].Field)
}

func TestHandleCreateProduct_ValidationError(t *testing.T) {
	c := NewAPIController(&mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			return nil, invalidProduct()
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleCreateProduct(rec, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"price":1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body validationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, usecase.MsgInvalidProduct, body.Message)
	assert.Equal(t, []apperrors.ValidationDetail{{Field: "name", Message: usecase.MsgNameRequired}}, body.Details)
}

func TestHandleCreateProduct_StorageError(t *testing.T) {
	c := NewAPIController(&mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			return nil, apperrors.NewStorageError(usecase.MsgCreateDatabaseError, errors.New("disk full"))
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleCreateProduct(rec, httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"a","description":"b","price":1}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")
}

// Pages

func newPageController(t *testing.T, uc ProductUseCase, apiURL string, store web.PageStore) *PageController {
	renderer, err := web.NewRenderer(zap.NewNop())
	require.NoError(t, err)
	api := apiclient.NewClient(apiURL, time.Second, zap.NewNop())
	return NewPageController(uc, api, renderer, store, zap.NewNop())
}

func TestList_ReadsThroughAPIWithSessionToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{"products":[{"id":1,"name":"Mug","description":"Ceramic","price":12.5}]}}`)
	}))
	defer srv.Close()

	store := mapStore{}
	c := newPageController(t, &mockProductUseCase{}, srv.URL, store)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/products", nil)
	req.AddCookie(&http.Cookie{Name: apiclient.TokenCookie, Value: "session-token"})
	rec := httptest.NewRecorder()
	c.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mug")
	assert.Contains(t, rec.Body.String(), "$12.50")
	assert.Equal(t, "Bearer session-token", auth)
	assert.Contains(t, store, usecase.ListPath)
}

func TestList_APIFailureRendersErrorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"foo":1}`)
	}))
	defer srv.Close()

	store := mapStore{}
	c := newPageController(t, &mockProductUseCase{}, srv.URL, store)

	rec := httptest.NewRecorder()
	c.List(rec, httptest.NewRequest(http.MethodGet, "/dashboard/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error loading products")
	assert.Empty(t, store)
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/dashboard/products/create", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreate_RedirectsToList(t *testing.T) {
	var got dto.CreateProductRequest
	c := newPageController(t, &mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			got = req
			return &dto.ProductDTO{ID: 1}, nil
		},
	}, "http://unused", mapStore{})

	rec := httptest.NewRecorder()
	c.Create(rec, postForm(url.Values{"name": {"Mug"}, "description": {"Ceramic"}, "price": {"12.50"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, usecase.ListPath, rec.Header().Get("Location"))
	require.NotNil(t, got.Price)
	assert.Equal(t, 12.5, *got.Price)
}

func TestCreate_UnparsablePrice(t *testing.T) {
	c := newPageController(t, &mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			t.Fatal("create must not be called")
			return nil, nil
		},
	}, "http://unused", mapStore{})

	rec := httptest.NewRecorder()
	c.Create(rec, postForm(url.Values{"name": {"Mug"}, "description": {"Ceramic"}, "price": {"abc"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgPriceInvalid)
}

func TestCreate_ValidationErrorKeepsInput(t *testing.T) {
	c := newPageController(t, &mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			assert.Nil(t, req.Price)
			return nil, invalidProduct()
		},
	}, "http://unused", mapStore{})

	rec := httptest.NewRecorder()
	c.Create(rec, postForm(url.Values{"description": {"Left behind"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.MsgNameRequired)
	assert.Contains(t, rec.Body.String(), "Left behind")
}

func TestCreate_StorageError(t *testing.T) {
	c := newPageController(t, &mockProductUseCase{
		CreateProductFunc: func(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductDTO, error) {
			return nil, apperrors.NewStorageError(usecase.MsgCreateDatabaseError, errors.New("gone"))
		},
	}, "http://unused", mapStore{})

	rec := httptest.NewRecorder()
	c.Create(rec, postForm(url.Values{"name": {"a"}, "description": {"b"}, "price": {"1"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.MsgCreateDatabaseError)
}
