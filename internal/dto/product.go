package dto

import "time"

// CreateProductRequest is the JSON body of POST /api/products. Price is a
// pointer so a missing price can be told apart from zero.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

type ProductDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProductList struct {
	Products []ProductDTO `json:"products"`
}

type ProductListResponse struct {
	Data ProductList `json:"data"`
}

type ProductResponse struct {
	Data ProductDTO `json:"data"`
}
