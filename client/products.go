package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"catalog/models"

	"github.com/shopspring/decimal"
)

// ProductQuery selects one page of products. Zero values are left to the
// server's defaults.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	return v
}

type ProductPage struct {
	Products   []models.Product
	Pagination models.Pagination
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
}

// ProductPatch changes only its non-nil fields.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	path := "/products"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var page ProductPage
	env, err := c.do(ctx, http.MethodGet, path, nil, &page.Products)
	if err != nil {
		return nil, err
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	var p models.Product
	if _, err := c.do(ctx, http.MethodPost, "/products", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	var p models.Product
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
	return err
}

// ProductCategories returns the distinct labels products currently use.
func (c *Client) ProductCategories(ctx context.Context) ([]string, error) {
	var labels []string
	if _, err := c.do(ctx, http.MethodGet, "/products/categories/list", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}
