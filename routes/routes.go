package routes

import (
	"regexp"
	"time"

	"catalog/config"
	"catalog/db"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Version is reported by the service metadata endpoint.
const Version = "1.0.0"

var localOrigin = regexp.MustCompile(`^http://(localhost|127\.0\.0\.1):\d+$`)

// OriginAllowed accepts any localhost or 127.0.0.1 origin on any port, plus
// the one configured origin.
func OriginAllowed(configured string) func(origin string) bool {
	return func(origin string) bool {
		return origin == configured || localOrigin.MatchString(origin)
	}
}

// NewApp builds the HTTP server around a store handle and a change feed.
func NewApp(cfg *config.Config, gw *db.Gateway, hub *Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog " + Version,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: errorHandler(cfg.Development()),
	})

	origin := cfg.CORSOrigin
	if origin == "" {
		origin = config.DefaultCORSOrigin
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowOriginsFunc: OriginAllowed(origin),
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} - ${latency} ${method} ${path}\n",
	}))

	// Serve uploaded images
	app.Static("/uploads", cfg.UploadDir)

	SetupRoutes(app, gw, cfg.UploadDir, hub)
	return app
}

// SetupRoutes mounts the service endpoints, the resource routers and the
// change feed, then the catch-all 404.
func SetupRoutes(app *fiber.App, gw *db.Gateway, uploadDir string, hub *Hub) {
	started := time.Now()
	app.Get("/", serviceInfo)
	app.Get("/health", health(started))
	app.Get("/ws", adaptor.HTTPHandler(hub))

	api := app.Group("/api")
	NewProductRouter(db.NewProductRepository(gw), hub).Register(api.Group("/products"))
	NewCategoryRouter(db.NewCategoryRepository(gw), hub).Register(api.Group("/categories"))
	NewUploadRouter(uploadDir, hub).Register(api.Group("/upload"))

	app.Use(routeNotFound)
}
