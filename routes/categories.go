package routes

import (
	"context"
	"errors"
	"fmt"

	"catalog/db"
	"catalog/models"

	"github.com/gofiber/fiber/v2"
)

// CategoryStore is the persistence the categories router needs.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
	CountProducts(ctx context.Context, name string) (int64, error)
}

type CategoryRouter struct {
	store  CategoryStore
	events Publisher
}

func NewCategoryRouter(store CategoryStore, events Publisher) *CategoryRouter {
	return &CategoryRouter{store: store, events: events}
}

func (r *CategoryRouter) Register(group fiber.Router) {
	group.Get("/", r.list)
	group.Post("/", r.create)
	group.Get("/:id", r.get)
	group.Put("/:id", r.update)
	group.Delete("/:id", r.delete)
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description"`
}

func (r *CategoryRouter) list(c *fiber.Ctx) error {
	categories, err := r.store.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(envelope{Success: true, Data: categories})
}

func (r *CategoryRouter) get(c *fiber.Ctx) error {
	category, err := r.find(c)
	if err != nil {
		return err
	}
	return c.JSON(envelope{Success: true, Data: category})
}

func (r *CategoryRouter) create(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation("Failed to parse request body")
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	category, err := r.store.Create(c.UserContext(), &models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if errors.Is(err, db.ErrDuplicate) {
		return errConflict("Category name already exists")
	}
	if err != nil {
		return err
	}

	r.events.Publish(models.NewEvent(models.CategoryCreated, category.ID, category.Name))
	return c.Status(fiber.StatusCreated).JSON(envelope{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// update applies a partial change. Keeping the current name is allowed;
// taking another category's name is a conflict reported by the unique index.
func (r *CategoryRouter) update(c *fiber.Ctx) error {
	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation("Failed to parse request body")
	}

	category, err := r.find(c)
	if err != nil {
		return err
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	updated, err := r.store.Update(c.UserContext(), category)
	switch {
	case errors.Is(err, db.ErrDuplicate):
		return errConflict("Category name already exists")
	case errors.Is(err, db.ErrNotFound):
		return errNotFound("Category not found")
	case err != nil:
		return err
	}

	r.events.Publish(models.NewEvent(models.CategoryUpdated, updated.ID, updated.Name))
	return c.JSON(envelope{
		Success: true,
		Message: "Category updated successfully",
		Data:    updated,
	})
}

// delete refuses while any product still carries the category's name.
func (r *CategoryRouter) delete(c *fiber.Ctx) error {
	category, err := r.find(c)
	if err != nil {
		return err
	}

	n, err := r.store.CountProducts(c.UserContext(), category.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		conflict := errConflict(fmt.Sprintf("Cannot delete category: %d product(s) still use it", n))
		conflict.Details = fiber.Map{"products": n}
		return conflict
	}

	err = r.store.Delete(c.UserContext(), category.ID)
	if errors.Is(err, db.ErrNotFound) {
		return errNotFound("Category not found")
	}
	if err != nil {
		return err
	}

	r.events.Publish(models.NewEvent(models.CategoryDeleted, category.ID, category.Name))
	return c.JSON(envelope{
		Success: true,
		Message: "Category deleted successfully",
	})
}

func (r *CategoryRouter) find(c *fiber.Ctx) (*models.Category, error) {
	id, ok := paramID(c)
	if !ok {
		return nil, errNotFound("Category not found")
	}
	category, err := r.store.Get(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errNotFound("Category not found")
	}
	return category, err
}
