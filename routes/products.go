package routes

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"catalog/db"
	"catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ProductStore is the persistence the products router needs.
type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]models.Product, int64, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]string, error)
}

type ProductRouter struct {
	store  ProductStore
	events Publisher
}

func NewProductRouter(store ProductStore, events Publisher) *ProductRouter {
	return &ProductRouter{store: store, events: events}
}

func (r *ProductRouter) Register(group fiber.Router) {
	// Registered before /:id so "categories" is never read as an id.
	group.Get("/categories/list", r.listCategories)
	group.Get("/", r.list)
	group.Post("/", r.create)
	group.Get("/:id", r.get)
	group.Put("/:id", r.update)
	group.Delete("/:id", r.delete)
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    string           `json:"category"`
	Stock       json.RawMessage  `json:"stock"`
	ImageURL    string           `json:"image_url"`
}

// updateProductRequest leaves a field nil when the body omits it or sends
// null.
type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitnil,min=1"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Stock       json.RawMessage  `json:"stock"`
	ImageURL    *string          `json:"image_url"`
}

// GET /api/products
func (r *ProductRouter) list(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := models.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}

	products, total, err := r.store.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	pagination := models.NewPagination(page, limit, total)
	return c.JSON(envelope{
		Success:    true,
		Data:       products,
		Pagination: pagination,
	})
}

// GET /api/products/:id
func (r *ProductRouter) get(c *fiber.Ctx) error {
	product, err := r.find(c)
	if err != nil {
		return err
	}
	return c.JSON(envelope{Success: true, Data: product})
}

// POST /api/products
func (r *ProductRouter) create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation("Failed to parse request body")
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if !req.Price.IsPositive() {
		return errValidation("Price must be greater than 0")
	}

	product, err := r.store.Create(c.UserContext(), &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       coerceInt(req.Stock),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	r.events.Publish(models.NewEvent(models.ProductCreated, product.ID, product.Name))
	return c.Status(fiber.StatusCreated).JSON(envelope{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// PUT /api/products/:id
func (r *ProductRouter) update(c *fiber.Ctx) error {
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation("Failed to parse request body")
	}

	product, err := r.find(c)
	if err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return errValidation("Price must be greater than 0")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Stock != nil && string(req.Stock) != "null" {
		product.Stock = coerceInt(req.Stock)
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	updated, err := r.store.Update(c.UserContext(), product)
	if errors.Is(err, db.ErrNotFound) {
		return errNotFound("Product not found")
	}
	if err != nil {
		return err
	}

	r.events.Publish(models.NewEvent(models.ProductUpdated, updated.ID, updated.Name))
	return c.JSON(envelope{
		Success: true,
		Message: "Product updated successfully",
		Data:    updated,
	})
}

// DELETE /api/products/:id
func (r *ProductRouter) delete(c *fiber.Ctx) error {
	product, err := r.find(c)
	if err != nil {
		return err
	}

	err = r.store.Delete(c.UserContext(), product.ID)
	if errors.Is(err, db.ErrNotFound) {
		return errNotFound("Product not found")
	}
	if err != nil {
		return err
	}

	r.events.Publish(models.NewEvent(models.ProductDeleted, product.ID, product.Name))
	return c.JSON(envelope{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// GET /api/products/categories/list
func (r *ProductRouter) listCategories(c *fiber.Ctx) error {
	labels, err := r.store.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(envelope{Success: true, Data: labels})
}

func (r *ProductRouter) find(c *fiber.Ctx) (*models.Product, error) {
	id, ok := paramID(c)
	if !ok {
		return nil, errNotFound("Product not found")
	}
	product, err := r.store.Get(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errNotFound("Product not found")
	}
	return product, err
}

// pageParams reads page and limit, forcing page >= 1 and 1 <= limit <= 100.
// Values that do not parse fall back to the defaults.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err = strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil:
		limit = defaultLimit
	case limit < 1:
		limit = 1
	case limit > maxLimit:
		limit = maxLimit
	}
	return page, limit
}

// paramID reads the :id route parameter. Ids are positive integers; anything
// else cannot name a row.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
