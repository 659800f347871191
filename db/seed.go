package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type fixtureCategory struct {
	id          uint
	name        string
	description string
}

type fixtureProduct struct {
	id          uint
	name        string
	description string
	price       string
	category    string
	stock       int
	imageURL    string
}

var fixtureCategories = []fixtureCategory{
	{1, "Phones", "Smartphones and accessories"},
	{2, "Computers", "Laptops, desktops and workstations"},
	{3, "Audio", "Headphones, speakers and other audio gear"},
	{4, "Tablets", "Tablets and tablet accessories"},
	{5, "Wearables", "Smart watches, bands and other wearables"},
	{6, "Home Appliances", "Household appliances and smart home devices"},
	{7, "Accessories", "Chargers, cables, cases"},
	{8, "Gaming", "Consoles, controllers and games"},
	{9, "Photography", "Cameras, lenses and tripods"},
	{10, "Fitness", "Fitness trackers, scales and massagers"},
}

var fixtureProducts = []fixtureProduct{
	{1, "iPhone 15 Pro", "Latest Apple phone with the A17 chip", "7999.00", "Phones", 50, "https://via.placeholder.com/300x300?text=iPhone+15+Pro"},
	{2, "MacBook Air M2", "Thin and light laptop for work and study", "8999.00", "Computers", 30, "https://via.placeholder.com/300x300?text=MacBook+Air"},
	{3, "AirPods Pro", "Wireless earbuds with active noise cancellation", "1899.00", "Audio", 100, "https://via.placeholder.com/300x300?text=AirPods+Pro"},
	{4, "iPad Air", "Tablet with Apple Pencil support", "4399.00", "Tablets", 25, "https://via.placeholder.com/300x300?text=iPad+Air"},
	{5, "Apple Watch", "Smart watch with health monitoring", "2999.00", "Wearables", 60, "https://via.placeholder.com/300x300?text=Apple+Watch"},
}

// Seed inserts the fixture rows. Rows whose id or name already exists are
// left alone, so seeding twice is harmless.
func Seed(ctx context.Context, gw *Gateway) error {
	now := time.Now().UTC()

	var inserted int64
	for _, c := range fixtureCategories {
		res, err := gw.Execute(ctx,
			"INSERT OR IGNORE INTO categories (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			c.id, c.name, c.description, now, now)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
		inserted += res.RowsAffected
	}
	for _, p := range fixtureProducts {
		res, err := gw.Execute(ctx,
			`INSERT OR IGNORE INTO products (id, name, description, price, category, stock, image_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.description, p.price, p.category, p.stock, p.imageURL, now, now)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
		inserted += res.RowsAffected
	}

	log.Infof("Seed complete, %d new rows", inserted)
	return nil
}
