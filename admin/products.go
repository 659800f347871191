package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog/client"
	"catalog/models"

	"github.com/shopspring/decimal"
)

// ProductFields holds form input. A nil field was not filled in.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Stock       *string
	ImageURL    *string
}

// FormError lists the hints shown before a form is submitted.
type FormError struct {
	Hints []string
}

func (e *FormError) Error() string {
	return strings.Join(e.Hints, "; ")
}

func (c *Console) ProductList(ctx context.Context, q client.ProductQuery) error {
	page, err := c.api.ListProducts(ctx, q)
	if err != nil {
		return c.fail(err)
	}

	c.title("Products")
	if len(page.Products) == 0 {
		c.printf("%s\n", c.pal.Muted("No products found."))
	} else {
		t := newTable("ID", "NAME", "CATEGORY", "PRICE", "STOCK")
		for _, p := range page.Products {
			t.add(strconv.FormatUint(uint64(p.ID), 10), p.Name, p.Category, p.Price.StringFixed(2), strconv.Itoa(p.Stock))
		}
		t.render(c.out, c.pal)
	}

	pg := page.Pagination
	footer := fmt.Sprintf("Page %d of %d · %d total", pg.Page, max(pg.TotalPages, 1), pg.Total)
	if pg.HasPrev {
		footer += " · prev: --page " + strconv.Itoa(pg.Page-1)
	}
	if pg.HasNext {
		footer += " · next: --page " + strconv.Itoa(pg.Page+1)
	}
	c.printf("\n%s\n", c.pal.Muted(footer))
	return nil
}

func (c *Console) ProductDetail(ctx context.Context, id uint) error {
	p, err := c.api.GetProduct(ctx, id)
	if err != nil {
		return c.fail(err)
	}
	c.title(p.Name)
	c.printProduct(p)
	return nil
}

func (c *Console) printProduct(p *models.Product) {
	c.printf("ID:          %d\n", p.ID)
	c.printf("Name:        %s\n", p.Name)
	c.printf("Description: %s\n", p.Description)
	c.printf("Price:       %s\n", p.Price.StringFixed(2))
	c.printf("Category:    %s\n", p.Category)
	c.printf("Stock:       %d\n", p.Stock)
	c.printf("Image:       %s\n", p.ImageURL)
	c.printf("%s\n", c.pal.Muted(fmt.Sprintf("Created %s · Updated %s",
		p.CreatedAt.Local().Format("2006-01-02 15:04"), p.UpdatedAt.Local().Format("2006-01-02 15:04"))))
}

// ProductForm creates a product when id is 0 and edits product id otherwise.
// Name and price are required to create; an edit sends only the filled-in
// fields.
func (c *Console) ProductForm(ctx context.Context, id uint, f ProductFields) error {
	var (
		p   *models.Product
		err error
	)
	if id == 0 {
		in, ferr := f.input()
		if ferr != nil {
			return c.fail(ferr)
		}
		p, err = c.api.CreateProduct(ctx, in)
	} else {
		patch, ferr := f.patch()
		if ferr != nil {
			return c.fail(ferr)
		}
		p, err = c.api.UpdateProduct(ctx, id, patch)
	}
	if err != nil {
		return c.fail(err)
	}

	if id == 0 {
		c.success("Product created successfully")
	} else {
		c.success("Product updated successfully")
	}
	c.printProduct(p)
	return nil
}

func (c *Console) ProductDelete(ctx context.Context, id uint) error {
	if err := c.api.DeleteProduct(ctx, id); err != nil {
		return c.fail(err)
	}
	c.success("Product deleted successfully")
	return nil
}

func (f ProductFields) input() (client.ProductInput, error) {
	var hints []string
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		hints = append(hints, "Name is required")
	}
	if f.Price == nil || strings.TrimSpace(*f.Price) == "" {
		hints = append(hints, "Price is required")
	}
	if len(hints) > 0 {
		return client.ProductInput{}, &FormError{Hints: hints}
	}

	patch, err := f.patch()
	if err != nil {
		return client.ProductInput{}, err
	}
	in := client.ProductInput{Name: *patch.Name, Price: *patch.Price}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Category != nil {
		in.Category = *patch.Category
	}
	if patch.Stock != nil {
		in.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		in.ImageURL = *patch.ImageURL
	}
	return in, nil
}

func (f ProductFields) patch() (client.ProductPatch, error) {
	patch := client.ProductPatch{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
	}

	var hints []string
	if f.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*f.Price))
		if err != nil {
			hints = append(hints, "Price must be a number")
		} else {
			patch.Price = &price
		}
	}
	if f.Stock != nil {
		stock, err := strconv.Atoi(strings.TrimSpace(*f.Stock))
		if err != nil {
			hints = append(hints, "Stock must be a whole number")
		} else {
			patch.Stock = &stock
		}
	}
	if len(hints) > 0 {
		return client.ProductPatch{}, &FormError{Hints: hints}
	}
	if patch == (client.ProductPatch{}) {
		return patch, &FormError{Hints: []string{"Nothing to update"}}
	}
	return patch, nil
}

// IsFormError reports whether err came from form hints rather than the API.
func IsFormError(err error) bool {
	var fe *FormError
	return errors.As(err, &fe)
}
