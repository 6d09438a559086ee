// internal/database/seed.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

type seedCategory struct {
	name, slug    string
	subcategories [][2]string
}

var defaultCategories = []seedCategory{
	{"Electronics", "electronics", [][2]string{
		{"Mobiles", "mobiles"}, {"Laptops", "laptops"}, {"Headphones", "headphones"},
		{"Cameras", "cameras"}, {"Accessories", "electronics-accessories"},
	}},
	{"Home & Kitchen", "home-kitchen", [][2]string{
		{"Cookware", "cookware"}, {"Furniture", "furniture"}, {"Bedding", "bedding"},
		{"Storage", "storage"}, {"Decor", "decor"},
	}},
	{"Beauty & Personal Care", "beauty-personal-care", [][2]string{
		{"Skincare", "skincare"}, {"Haircare", "haircare"}, {"Makeup", "makeup"},
		{"Tools", "beauty-tools"}, {"Fragrances", "fragrances"},
	}},
	{"Clothing, Shoes & Jewelry", "clothing-shoes-jewelry", [][2]string{
		{"Men", "men"}, {"Women", "women"}, {"Kids", "kids"}, {"Shoes", "shoes"},
		{"Watches", "watches"}, {"Accessories", "clothing-accessories"},
	}},
	{"Sports & Outdoors", "sports-outdoors", [][2]string{
		{"Fitness", "fitness"}, {"Camping", "camping"}, {"Cycling", "cycling"},
		{"Sportswear", "sportswear"}, {"Equipment", "sports-equipment"},
	}},
	{"Toys & Games", "toys-games", [][2]string{
		{"Board Games", "board-games"}, {"Puzzles", "puzzles"},
		{"Action Figures", "action-figures"}, {"Dolls", "dolls"},
	}},
	{"Books", "books", [][2]string{
		{"Fiction", "fiction"}, {"Non-Fiction", "non-fiction"},
		{"Children's", "childrens-books"}, {"Academic", "academic-books"},
	}},
	{"Automotive", "automotive", [][2]string{
		{"Car Electronics", "car-electronics"}, {"Accessories", "automotive-accessories"},
		{"Tools", "automotive-tools"}, {"Parts", "automotive-parts"},
	}},
	{"Pet Supplies", "pet-supplies", [][2]string{
		{"Food", "pet-food"}, {"Toys", "pet-toys"}, {"Grooming", "pet-grooming"},
		{"Beds", "pet-beds"}, {"Carriers", "pet-carriers"},
	}},
	{"Health & Household", "health-household", [][2]string{
		{"Supplements", "supplements"}, {"Medical Supplies", "medical-supplies"},
		{"Cleaning", "cleaning"}, {"Baby Care", "baby-care"},
	}},
}

// SeedInitialData creates the admin account and the default category tree.
// Existing rows are left alone, so it is safe to run on every start.
func SeedInitialData(ctx context.Context, store *repository.Store, cfg config.SeedConfig) error {
	logrus.Info("Seeding initial data...")

	if err := seedAdmin(ctx, store.Accounts, cfg); err != nil {
		return err
	}

	created := 0
	for _, cat := range defaultCategories {
		parent, isNew, err := ensureCategory(ctx, store.Categories, cat.name, cat.slug, nil)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}
		for _, sub := range cat.subcategories {
			_, isNew, err := ensureCategory(ctx, store.Categories, sub[0], sub[1], parent)
			if err != nil {
				return err
			}
			if isNew {
				created++
			}
		}
	}

	logrus.WithField("categories_created", created).Info("Initial data seeding completed")
	return nil
}

func seedAdmin(ctx context.Context, accounts repository.AccountStore, cfg config.SeedConfig) error {
	_, err := accounts.FindUserByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	admin := &models.User{
		Name:  "System Administrator",
		Email: cfg.AdminEmail,
		Role:  models.RoleAdmin,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := accounts.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("email", cfg.AdminEmail).Info("Default admin user created")
	return nil
}

func ensureCategory(ctx context.Context, categories repository.CategoryStore, name, slug string, parent *models.Category) (*models.Category, bool, error) {
	existing, err := categories.FindBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up category %s: %w", slug, err)
	}

	category := &models.Category{Name: name, Slug: slug, IsActive: true}
	if parent != nil {
		category.ParentCategoryID = &parent.ID
		category.Level = 1
	}
	if err := categories.Create(ctx, category); err != nil {
		return nil, false, fmt.Errorf("failed to create category %s: %w", slug, err)
	}
	return category, true, nil
}
