package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// ProductInput carries the writable fields of a product. Zero values mean
// "not provided": Create rejects them, Update leaves the stored field alone.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
}

type PageRequest struct {
	Page  int
	Limit int
}

type Page struct {
	Products   []Product
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Page(ctx context.Context, req PageRequest) (Page, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (Product, error)
	Delete(ctx context.Context, id int64) (Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

// SeedProducts is the collection a fresh service starts with.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Sample Product", Price: 100, Description: "A product description"},
	}
}
