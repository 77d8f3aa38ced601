package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/models"
)

type CollectionService struct {
	DB *gorm.DB
}

func (s *CollectionService) List(ctx context.Context) ([]models.Collection, error) {
	var items []models.Collection
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("collection: list: %w", err)
	}
	return items, nil
}

func (s *CollectionService) Get(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := s.DB.WithContext(ctx).First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: collection %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("collection: get: %w", err)
	}
	return &collection, nil
}

func (s *CollectionService) GetBySlug(ctx context.Context, collectionSlug string) (*models.Collection, error) {
	var collection models.Collection
	if err := s.DB.WithContext(ctx).Where("slug = ?", collectionSlug).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: collection %q", ErrNotFound, collectionSlug)
		}
		return nil, fmt.Errorf("collection: get by slug: %w", err)
	}
	return &collection, nil
}

func (s *CollectionService) Create(ctx context.Context, name string) (*models.Collection, error) {
	collectionSlug, err := deriveSlug(name)
	if err != nil {
		return nil, err
	}
	if err := slugFree(ctx, s.DB, &models.Collection{}, collectionSlug, 0); err != nil {
		return nil, err
	}

	collection := models.Collection{Name: name, Slug: collectionSlug}
	if err := s.DB.WithContext(ctx).Create(&collection).Error; err != nil {
		return nil, fmt.Errorf("collection: create: %w", err)
	}
	return &collection, nil
}

func (s *CollectionService) Update(ctx context.Context, id uint, name string) (*models.Collection, error) {
	collection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" && name != collection.Name {
		newSlug, err := deriveSlug(name)
		if err != nil {
			return nil, err
		}
		if err := slugFree(ctx, s.DB, &models.Collection{}, newSlug, collection.ID); err != nil {
			return nil, err
		}
		collection.Name = name
		collection.Slug = newSlug
	}

	if err := s.DB.WithContext(ctx).Save(collection).Error; err != nil {
		return nil, fmt.Errorf("collection: update: %w", err)
	}
	return collection, nil
}

// Delete refuses while any product still references the collection.
func (s *CollectionService) Delete(ctx context.Context, id uint) error {
	var linked int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Where("collection_id = ?", id).Count(&linked).Error; err != nil {
		return fmt.Errorf("collection: dependent check: %w", err)
	}
	if linked > 0 {
		return fmt.Errorf("%w: collection %d still has %d products", ErrConflict, id, linked)
	}

	res := s.DB.WithContext(ctx).Delete(&models.Collection{}, id)
	if res.Error != nil {
		return fmt.Errorf("collection: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: collection %d", ErrNotFound, id)
	}
	return nil
}
