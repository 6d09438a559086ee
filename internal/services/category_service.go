// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type CategoryService struct {
	categories repository.CategoryStore
	products   repository.ProductStore
}

type CategoryRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Slug           string  `json:"slug" validate:"omitempty,max=120,slug"`
	Description    string  `json:"description" validate:"max=1000"`
	ParentCategory *string `json:"parent_category"`
	IsActive       *bool   `json:"is_active"`
}

func NewCategoryService(categories repository.CategoryStore, products repository.ProductStore) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// List returns the top-level categories with their subcategories attached.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]models.Category)
	for _, category := range all {
		if category.ParentCategoryID != nil {
			children[*category.ParentCategoryID] = append(children[*category.ParentCategoryID], category)
		}
	}

	tree := make([]models.Category, 0, len(all)-countChildren(children))
	for _, category := range all {
		if category.ParentCategoryID == nil {
			category.Subcategories = children[category.ID]
			tree = append(tree, category)
		}
	}
	return tree, nil
}

func countChildren(children map[uuid.UUID][]models.Category) int {
	n := 0
	for _, c := range children {
		n += len(c)
	}
	return n
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == id {
			category.Subcategories = append(category.Subcategories, c)
		}
	}
	return category, nil
}

// Exists reports whether id names a stored category.
func (s *CategoryService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.categories.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// ResolveCustom returns the category whose slug matches name, creating a
// top-level one on first use.
func (s *CategoryService) ResolveCustom(ctx context.Context, name string) (*models.Category, error) {
	slug := models.Slugify(name)
	if slug == "" {
		return nil, apperrors.InvalidInput("custom category name is empty")
	}

	existing, err := s.categories.FindBySlug(ctx, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category := &models.Category{
		Name:     strings.TrimSpace(name),
		Slug:     slug,
		IsActive: true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		// Another request created the same slug first.
		if errors.Is(err, apperrors.ErrConflict) {
			return s.categories.FindBySlug(ctx, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidationFailure(req); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    true,
	}
	if category.Slug == "" {
		category.Slug = models.Slugify(req.Name)
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := s.applyParent(ctx, category, req.ParentCategory); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidationFailure(req); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	if req.Slug != "" {
		category.Slug = req.Slug
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ParentCategory != nil {
		children, err := s.categories.CountChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		if children > 0 && strings.TrimSpace(*req.ParentCategory) != "" {
			return nil, apperrors.InvalidInput("a category with subcategories cannot become a subcategory")
		}
		if err := s.applyParent(ctx, category, req.ParentCategory); err != nil {
			return nil, err
		}
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that no product or subcategory references.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return apperrors.InvalidInput("category still has subcategories")
	}

	used, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return apperrors.InvalidInput(fmt.Sprintf("category is used by %d products", used))
	}

	return s.categories.Delete(ctx, id)
}

// applyParent sets the parent and level. Only top-level categories may have
// children, which keeps the tree two levels deep.
func (s *CategoryService) applyParent(ctx context.Context, category *models.Category, parentRef *string) error {
	if parentRef == nil || strings.TrimSpace(*parentRef) == "" {
		category.ParentCategoryID = nil
		category.Level = 0
		return nil
	}

	parentID, err := uuid.Parse(strings.TrimSpace(*parentRef))
	if err != nil {
		return apperrors.Validation([]apperrors.FieldError{{Field: "parent_category", Tag: "uuid", Message: "parent_category is not a valid id"}})
	}
	if parentID == category.ID {
		return apperrors.InvalidInput("a category cannot be its own parent")
	}

	parent, err := s.categories.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validation([]apperrors.FieldError{{Field: "parent_category", Tag: "exists", Message: "parent_category does not exist"}})
		}
		return err
	}
	if parent.Level != 0 {
		return apperrors.InvalidInput("subcategories cannot have children")
	}

	category.ParentCategoryID = &parent.ID
	category.Level = 1
	return nil
}
