package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog/models"

	"golang.org/x/sync/errgroup"
)

const productColumns = "id, name, description, price, category, stock, image_url, created_at, updated_at"

type ProductRepository struct {
	gw *Gateway
}

func NewProductRepository(gw *Gateway) *ProductRepository {
	return &ProductRepository{gw: gw}
}

// List returns one page of products, newest first, plus the number of rows
// matching the same filter. The page and the count are read concurrently
// and share no snapshot.
func (r *ProductRepository) List(ctx context.Context, f models.ProductFilter) ([]models.Product, int64, error) {
	where, args := productWhere(f)

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	pageSQL := "SELECT " + productColumns + " FROM products" + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	countSQL := "SELECT COUNT(*) FROM products" + where

	var (
		products []models.Product
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.gw.GetAll(gctx, &products, pageSQL, pageArgs...)
	})
	g.Go(func() error {
		_, err := r.gw.GetOne(gctx, &total, countSQL, args...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return products, total, nil
}

func (r *ProductRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	found, err := r.gw.GetOne(ctx, &p, "SELECT "+productColumns+" FROM products WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Create inserts p and returns the row as stored.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	res, err := r.gw.Execute(ctx,
		`INSERT INTO products (name, description, price, category, stock, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Category, p.Stock, p.ImageURL, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return r.Get(ctx, uint(res.LastInsertID))
}

// Update overwrites every mutable column of the row with p.ID and returns
// the stored row.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	res, err := r.gw.Execute(ctx,
		`UPDATE products
		 SET name = ?, description = ?, price = ?, category = ?, stock = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Stock, p.ImageURL, time.Now().UTC(), p.ID)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res, err := r.gw.Execute(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories lists the distinct non-empty category labels used by products,
// in ascending order. It does not consult the categories table.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	labels := []string{}
	err := r.gw.GetAll(ctx, &labels,
		"SELECT DISTINCT category FROM products WHERE category IS NOT NULL AND category != '' ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	return labels, nil
}

func productWhere(f models.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		term := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conds = append(conds, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`)
		args = append(args, term, term)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in a search term match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
