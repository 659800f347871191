// Package admin renders the catalog admin views on a terminal.
package admin

import (
	"context"
	"fmt"
	"io"

	"catalog/client"
	"catalog/models"
)

// API is the subset of *client.Client the views call.
type API interface {
	ListProducts(ctx context.Context, q client.ProductQuery) (*client.ProductPage, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, in client.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch client.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ProductCategories(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, in client.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, patch client.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	UploadFile(ctx context.Context, path string) (*client.UploadResult, error)
	Watch(ctx context.Context, handle func(models.Event)) error
}

// Console prints views to out. A failed call is shown as an error line and
// returned so the caller can set an exit status.
type Console struct {
	api API
	out io.Writer
	pal Palette
}

func New(api API, out io.Writer, pal Palette) *Console {
	return &Console{api: api, out: out, pal: pal}
}

// SetPalette switches the colours used by later views.
func (c *Console) SetPalette(pal Palette) {
	c.pal = pal
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) title(s string) {
	c.printf("%s\n\n", c.pal.Title(s))
}

func (c *Console) success(format string, args ...any) {
	c.printf("%s\n", c.pal.Success("✓ "+fmt.Sprintf(format, args...)))
}

// fail shows err the way every view reports a failed call.
func (c *Console) fail(err error) error {
	c.printf("%s\n", c.pal.Error("✗ "+err.Error()))
	return err
}
