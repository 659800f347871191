package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/config"
	"catalog/db"
	"catalog/routes"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg := config.Load()

	// Initialize database
	conn, err := db.Init(context.Background(), cfg.DBPath, cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	hub := routes.NewHub(routes.OriginAllowed(cfg.CORSOrigin))
	go hub.Run()

	app := routes.NewApp(cfg, db.NewGateway(conn), hub)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()
	log.Infof("Server listening on http://localhost:%s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Errorf("Server shutdown: %v", err)
	}
	if err := db.Close(conn); err != nil {
		log.Errorf("Close database: %v", err)
	}
}
