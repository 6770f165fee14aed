package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelieraurora/aurora/internal/auth"
	"github.com/atelieraurora/aurora/internal/util"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	if err := seedCatalog(ctx, queries, now); err != nil {
		return err
	}

	return nil
}

// seedCatalog fills the catalog with demo data so product-grid
// components have something to show on a fresh install.
func seedCatalog(ctx context.Context, queries *Queries, now time.Time) error {
	count, err := queries.CountCatalogCategories(ctx)
	if err != nil {
		return fmt.Errorf("counting catalog categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []struct {
		name  string
		slug  string
		items []struct {
			name       string
			priceCents int64
		}
	}{
		{
			name: "Accessories", slug: "accessories",
			items: []struct {
				name       string
				priceCents int64
			}{
				{"Silk Scarf", 4900},
				{"Leather Belt", 7900},
				{"Pearl Earrings", 12900},
				{"Velvet Hairband", 2900},
			},
		},
		{
			name: "Decor", slug: "decor",
			items: []struct {
				name       string
				priceCents int64
			}{
				{"Linen Table Runner", 5900},
				{"Ceramic Vase", 8900},
			},
		},
	}

	for _, cat := range categories {
		created, err := queries.CreateCatalogCategory(ctx, CreateCatalogCategoryParams{
			Name:      cat.name,
			Slug:      cat.slug,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating catalog category %q: %w", cat.slug, err)
		}
		for _, item := range cat.items {
			if _, err := queries.CreateCatalogItem(ctx, CreateCatalogItemParams{
				CategoryID: created.ID,
				Name:       item.name,
				Slug:       created.Slug + "-" + util.Slugify(item.name),
				PriceCents: item.priceCents,
				Active:     true,
				CreatedAt:  now,
			}); err != nil {
				return fmt.Errorf("creating catalog item %q: %w", item.name, err)
			}
		}
	}

	slog.Info("seeded demo catalog")
	return nil
}
