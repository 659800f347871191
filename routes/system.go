package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GET /
func serviceInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Product catalog API",
		"version": Version,
		"endpoints": fiber.Map{
			"products":          "/api/products",
			"categories":        "/api/categories",
			"productCategories": "/api/products/categories/list",
			"upload":            "/api/upload/image",
			"health":            "/health",
			"events":            "/ws",
		},
		"status": "running",
	})
}

// GET /health
func health(started time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Seconds(),
		})
	}
}
