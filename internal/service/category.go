package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/models"
)

type CategoryService struct {
	DB *gorm.DB
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}
	return items, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("category: get: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, categorySlug)
		}
		return nil, fmt.Errorf("category: get by slug: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	categorySlug, err := deriveSlug(name)
	if err != nil {
		return nil, err
	}
	if err := slugFree(ctx, s.DB, &models.Category{}, categorySlug, 0); err != nil {
		return nil, err
	}

	category := models.Category{Name: name, Slug: categorySlug}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("category: create: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != category.Name {
		newSlug, err := deriveSlug(name)
		if err != nil {
			return nil, err
		}
		if err := slugFree(ctx, s.DB, &models.Category{}, newSlug, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
		category.Slug = newSlug
	}

	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("category: update: %w", err)
	}
	return category, nil
}

// Delete refuses while any product still references the category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	var linked int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&linked).Error; err != nil {
		return fmt.Errorf("category: dependent check: %w", err)
	}
	if linked > 0 {
		return fmt.Errorf("%w: category %d still has %d products", ErrConflict, id, linked)
	}

	res := s.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("category: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return nil
}
