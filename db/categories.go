package db

import (
	"context"
	"fmt"
	"time"

	"catalog/models"
)

const categoryColumns = "id, name, description, created_at, updated_at"

type CategoryRepository struct {
	gw *Gateway
}

func NewCategoryRepository(gw *Gateway) *CategoryRepository {
	return &CategoryRepository{gw: gw}
}

// List returns every category, newest first.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.gw.GetAll(ctx, &categories,
		"SELECT "+categoryColumns+" FROM categories ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	found, err := r.gw.GetOne(ctx, &c, "SELECT "+categoryColumns+" FROM categories WHERE id = ? LIMIT 1", id)
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

// Create inserts c. A name already in use yields ErrDuplicate from the
// unique index.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	now := time.Now().UTC()
	res, err := r.gw.Execute(ctx,
		"INSERT INTO categories (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		c.Name, c.Description, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return r.Get(ctx, uint(res.LastInsertID))
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	res, err := r.gw.Execute(ctx,
		"UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Description, time.Now().UTC(), c.ID)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", c.ID, err)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	res, err := r.gw.Execute(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProducts reports how many products carry name as their category label.
func (r *CategoryRepository) CountProducts(ctx context.Context, name string) (int64, error) {
	var n int64
	if _, err := r.gw.GetOne(ctx, &n, "SELECT COUNT(*) FROM products WHERE category = ?", name); err != nil {
		return 0, fmt.Errorf("count products for category %q: %w", name, err)
	}
	return n, nil
}
