package routes

import (
	"fmt"
	"net/http"
	"testing"

	"catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	resp, env := s.do(t, http.MethodPost, "/api/categories", fiber.Map{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	s.nextEvent(t)
	return decodeData[models.Category](t, env)
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	phones := s.createCategory(t, "Phones")
	assert.NotZero(t, phones.ID)
	assert.Equal(t, phones.CreatedAt, phones.UpdatedAt)

	resp, env := s.do(t, http.MethodPost, "/api/categories", fiber.Map{"name": "Phones"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindConflict, env.Error)
	assert.Equal(t, "Category name already exists", env.Message)

	x := s.createProduct(t, fiber.Map{"name": "X", "price": 10, "category": "Phones"})
	categoryPath := fmt.Sprintf("/api/categories/%d", phones.ID)

	resp, env = s.do(t, http.MethodDelete, categoryPath, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindConflict, env.Error)
	assert.Contains(t, env.Message, "1 product")
	assert.EqualValues(t, 1, env.Details["products"])

	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", x.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s.nextEvent(t)

	resp, env = s.do(t, http.MethodDelete, categoryPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Category deleted successfully", env.Message)
	e := s.nextEvent(t)
	assert.Equal(t, models.CategoryDeleted, e.Type)
	assert.Equal(t, "Phones", e.Name)

	resp, env = s.do(t, http.MethodGet, categoryPath, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Category not found", env.Message)
}

func TestCategoryDeleteCountsLiveProducts(t *testing.T) {
	s := newTestServer(t)
	tools := s.createCategory(t, "Tools")
	for i := 0; i < 3; i++ {
		s.createProduct(t, fiber.Map{"name": fmt.Sprintf("Tool %d", i), "price": 9, "category": "Tools"})
	}
	s.createProduct(t, fiber.Map{"name": "Other", "price": 9, "category": "tools"})

	_, env := s.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", tools.ID), nil)
	assert.Equal(t, KindConflict, env.Error)
	assert.EqualValues(t, 3, env.Details["products"])
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"Cameras", "Audio", "Books"} {
		s.createCategory(t, name)
	}

	resp, env := s.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	categories := decodeData[[]models.Category](t, env)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Books", "Audio", "Cameras"}, names)
}

func TestUpdateCategory(t *testing.T) {
	s := newTestServer(t)
	audio := s.createCategory(t, "Audio")
	s.createCategory(t, "Video")
	path := fmt.Sprintf("/api/categories/%d", audio.ID)

	t.Run("KeepOwnName", func(t *testing.T) {
		resp, env := s.do(t, http.MethodPut, path, fiber.Map{"name": "Audio", "description": "Speakers"})
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
		s.nextEvent(t)

		got := decodeData[models.Category](t, env)
		assert.Equal(t, "Audio", got.Name)
		assert.Equal(t, "Speakers", got.Description)
	})

	t.Run("DescriptionOnly", func(t *testing.T) {
		resp, env := s.do(t, http.MethodPut, path, fiber.Map{"description": ""})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		s.nextEvent(t)

		got := decodeData[models.Category](t, env)
		assert.Equal(t, "Audio", got.Name)
		assert.Empty(t, got.Description)
	})

	t.Run("TakenName", func(t *testing.T) {
		resp, env := s.do(t, http.MethodPut, path, fiber.Map{"name": "Video"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, KindConflict, env.Error)
	})

	t.Run("EmptyName", func(t *testing.T) {
		resp, env := s.do(t, http.MethodPut, path, fiber.Map{"name": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, KindValidation, env.Error)
		assert.Equal(t, "name must not be empty", env.Message)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPut, "/api/categories/404", fiber.Map{"name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateCategoryRequiresName(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/categories", fiber.Map{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, KindValidation, env.Error)
	assert.Equal(t, "name is required", env.Message)
}
