package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"catalog/client"

	"golang.org/x/sync/errgroup"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

type Summary struct {
	Products   int64
	Categories int
	LowStock   int
	Labels     []string
}

// Summarize gathers the dashboard figures with concurrent calls.
func (c *Console) Summarize(ctx context.Context) (*Summary, error) {
	var s Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, low, err := c.scanStock(gctx)
		s.Products, s.LowStock = total, low
		return err
	})
	g.Go(func() error {
		categories, err := c.api.ListCategories(gctx)
		s.Categories = len(categories)
		return err
	})
	g.Go(func() error {
		labels, err := c.api.ProductCategories(gctx)
		s.Labels = labels
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// scanStock walks every product page counting low-stock items.
func (c *Console) scanStock(ctx context.Context) (total int64, low int, err error) {
	q := client.ProductQuery{Page: 1, Limit: 100}
	for {
		page, err := c.api.ListProducts(ctx, q)
		if err != nil {
			return 0, 0, err
		}
		total = page.Pagination.Total
		for _, p := range page.Products {
			if p.Stock < LowStockThreshold {
				low++
			}
		}
		if !page.Pagination.HasNext {
			return total, low, nil
		}
		q.Page++
	}
}

func (c *Console) Dashboard(ctx context.Context) error {
	s, err := c.Summarize(ctx)
	if err != nil {
		return c.fail(err)
	}

	c.title("Dashboard")
	c.printf("Products:    %d\n", s.Products)
	c.printf("Categories:  %d\n", s.Categories)
	low := c.pal.Success("0")
	if s.LowStock > 0 {
		low = c.pal.Warn(strconv.Itoa(s.LowStock))
	}
	c.printf("Low stock:   %s %s\n", low, c.pal.Muted(fmt.Sprintf("(below %d)", LowStockThreshold)))
	if len(s.Labels) > 0 {
		c.printf("In use:      %s\n", strings.Join(s.Labels, ", "))
	}
	return nil
}
