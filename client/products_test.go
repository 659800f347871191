package client

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProductRoundTrip(t *testing.T) {
	c, _, _ := newTestAPI(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, ProductInput{
		Name:        "Headphones",
		Description: "Closed back",
		Price:       decimal.RequireFromString("79.90"),
		Category:    "Audio",
		Stock:       5,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, decimal.RequireFromString("79.9").Equal(created.Price))

	got, err := c.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", got.Name)

	stock := 0
	updated, err := c.UpdateProduct(ctx, created.ID, ProductPatch{
		Description: strPtr(""),
		Stock:       &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Headphones", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Zero(t, updated.Stock)
	assert.Equal(t, "Audio", updated.Category)

	labels, err := c.ProductCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audio"}, labels)

	page, err := c.ListProducts(ctx, ProductQuery{Search: "head"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.EqualValues(t, 1, page.Pagination.Total)

	require.NoError(t, c.DeleteProduct(ctx, created.ID))
	_, err = c.GetProduct(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestCreateProductRejected(t *testing.T) {
	c, _, _ := newTestAPI(t)

	_, err := c.CreateProduct(context.Background(), ProductInput{Name: "Free", Price: decimal.Zero})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "ValidationError", apiErr.Kind)
	assert.Equal(t, "Price must be greater than 0", apiErr.Message)
}
