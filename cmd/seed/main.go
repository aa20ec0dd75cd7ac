package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhikadam2003/Ecommerce/config"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

// One-shot seeding: the admin account from env, the default categories
// and a handful of sample products. Idempotent unless --wipe is given.
func main() {
	wipe := flag.Bool("wipe", false, "drop users, categories and products before seeding")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	if *wipe {
		for _, name := range []string{"users", "categories", "products"} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Fatalf("❌ Failed to drop %s: %v", name, err)
			}
		}
		log.Warn("Wiped users, categories and products")
	}

	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}
	s := store.NewMongo(db)

	// Admin user
	if _, err := s.UserByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Infof("Admin exists: %s", cfg.AdminEmail)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("❌ Failed to hash admin password: %v", err)
		}
		admin := &models.User{
			Name:     "Admin",
			Email:    cfg.AdminEmail,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := s.CreateUser(ctx, admin); err != nil {
			log.Fatalf("❌ Failed to create admin: %v", err)
		}
		log.Infof("Admin created: %s", cfg.AdminEmail)
	}

	// Categories
	categoryNames := []string{"Electronics", "Fashion", "Home", "Books"}
	existing, err := s.ListCategories(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list categories: %v", err)
	}
	byName := make(map[string]models.Category, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}
	for _, name := range categoryNames {
		if _, ok := byName[name]; ok {
			continue
		}
		cat := &models.Category{Name: name, Slug: models.Slugify(name)}
		if err := s.CreateCategory(ctx, cat); err != nil {
			log.Fatalf("❌ Failed to create category %s: %v", name, err)
		}
		byName[name] = *cat
	}

	// Sample products
	samples := []struct {
		name, description, category string
		price                       float64
		stock                       int
	}{
		{"Wireless Headphones", "Noise-cancelling over-ear", "Electronics", 149.99, 50},
		{"Smartphone Case", "Shockproof", "Electronics", 19.99, 150},
		{"Casual T-Shirt", "100% cotton", "Fashion", 12.5, 200},
		{"Coffee Maker", "12-cup drip", "Home", 39.99, 80},
		{"Mystery Novel", "Bestseller", "Books", 9.99, 120},
	}

	products, err := s.AllProducts(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list products: %v", err)
	}
	haveProduct := make(map[string]bool, len(products))
	for _, p := range products {
		haveProduct[p.Name] = true
	}

	for _, sp := range samples {
		if haveProduct[sp.name] {
			continue
		}
		product := &models.Product{
			Name:        sp.name,
			Slug:        models.Slugify(sp.name),
			Description: sp.description,
			Price:       sp.price,
			Stock:       sp.stock,
			Category:    byName[sp.category].ID,
		}
		if err := s.CreateProduct(ctx, product); err != nil {
			log.Fatalf("❌ Failed to create product %s: %v", sp.name, err)
		}
	}

	log.Info("✅ Seeding complete")
}
