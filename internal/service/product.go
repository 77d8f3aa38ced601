package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/cache"
	"github.com/rafidhia/storefront/internal/logging"
	"github.com/rafidhia/storefront/internal/models"
	"github.com/rafidhia/storefront/internal/service/search"
	"github.com/rafidhia/storefront/internal/slug"
)

type ProductService struct {
	DB    *gorm.DB
	Index *search.ES
	Cache *cache.RelatedCache
}

type VariantInput struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type ProductInput struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	CategoryID   uint           `json:"category_id"`
	CollectionID uint           `json:"collection_id"`
	Variants     []VariantInput `json:"variants"`
}

func (s *ProductService) List(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("product: count: %w", err)
	}

	var items []models.Product
	if err := s.DB.WithContext(ctx).
		Preload("Variants").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, fmt.Errorf("product: list: %w", err)
	}
	return total, items, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("product: get: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Preload("Variants").Where("slug = ?", productSlug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
		}
		return nil, fmt.Errorf("product: get by slug: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	productSlug, err := deriveSlug(in.Name)
	if err != nil {
		return nil, err
	}
	if err := slugFree(ctx, s.DB, &models.Product{}, productSlug, 0); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in.CategoryID, in.CollectionID); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:         in.Name,
		Slug:         productSlug,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		CollectionID: in.CollectionID,
	}
	for _, v := range in.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Label: v.Label,
			Price: v.Price,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("product: create: %w", err)
	}

	s.afterWrite(ctx, &product, false)
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("product: update lookup: %w", err)
	}

	if in.Name != "" && in.Name != product.Name {
		newSlug, err := deriveSlug(in.Name)
		if err != nil {
			return nil, err
		}
		if err := slugFree(ctx, s.DB, &models.Product{}, newSlug, product.ID); err != nil {
			return nil, err
		}
		product.Name = in.Name
		product.Slug = newSlug
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if err := s.checkRefs(ctx, in.CategoryID, in.CollectionID); err != nil {
		return nil, err
	}
	if in.CategoryID != 0 {
		product.CategoryID = in.CategoryID
	}
	if in.CollectionID != 0 {
		product.CollectionID = in.CollectionID
	}

	if err := s.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, fmt.Errorf("product: update: %w", err)
	}

	s.afterWrite(ctx, &product, false)
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("product: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}

	s.afterWrite(ctx, &models.Product{ID: id}, true)
	return nil
}

// afterWrite keeps the search index and the related-products cache in step
// with the catalog. Both are auxiliary: failures are logged, not returned.
func (s *ProductService) afterWrite(ctx context.Context, product *models.Product, deleted bool) {
	l := logging.FromContext(ctx)

	if deleted {
		if err := s.Index.DeleteProduct(ctx, product.ID); err != nil {
			l.Warn("search index delete failed", "product_id", product.ID, "error", err)
		}
	} else {
		if err := s.Index.IndexProduct(ctx, product); err != nil {
			l.Warn("search index update failed", "product_id", product.ID, "error", err)
		}
	}

	if err := s.Cache.Flush(ctx); err != nil {
		l.Warn("related cache flush failed", "error", err)
	}
}

func (s *ProductService) checkRefs(ctx context.Context, categoryID, collectionID uint) error {
	if categoryID != 0 {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&n).Error; err != nil {
			return fmt.Errorf("product: category check: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
	}
	if collectionID != 0 {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Collection{}).Where("id = ?", collectionID).Count(&n).Error; err != nil {
			return fmt.Errorf("product: collection check: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: collection %d", ErrNotFound, collectionID)
		}
	}
	return nil
}

func deriveSlug(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	s := slug.Make(name)
	if s == "" {
		return "", fmt.Errorf("%w: name %q produces an empty slug", ErrValidation, name)
	}
	return s, nil
}

func slugFree(ctx context.Context, db *gorm.DB, model interface{}, s string, excludeID uint) error {
	q := db.WithContext(ctx).Model(model).Where("slug = ?", s)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("slug check: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: slug %q already in use", ErrConflict, s)
	}
	return nil
}
