package client

import (
	"context"
	"fmt"
	"net/http"

	"catalog/models"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	var category models.Category
	if _, err := c.do(ctx, http.MethodPost, "/categories", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	var category models.Category
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), patch, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
	return err
}
