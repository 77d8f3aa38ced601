package service

import (
	"context"
	"fmt"
	"math/rand"

	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/cache"
	"github.com/rafidhia/storefront/internal/logging"
	"github.com/rafidhia/storefront/internal/models"
)

// MaxRelatedLimit caps the per-request limit override.
const MaxRelatedLimit = 50

// RelatedService backfills a fixed-size recommendation set with a tier
// cascade: same collection, then same category, then newest products.
type RelatedService struct {
	DB           *gorm.DB
	Cache        *cache.RelatedCache
	DefaultLimit int
}

// Resolve returns up to limit products related to productID, never including
// productID itself and never repeating an id. collectionID/categoryID of 0
// skip their tier. The combined set is shuffled so tier order is not visible
// to the caller. Any tier failure fails the whole call.
func (s *RelatedService) Resolve(ctx context.Context, productID, collectionID, categoryID uint, limit int) ([]models.Product, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if limit > MaxRelatedLimit {
		limit = MaxRelatedLimit
	}

	key := cache.Key(productID, collectionID, categoryID, limit)
	if cached, err := s.Cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	acc := make([]models.Product, 0, limit)
	exclude := []uint{productID}

	if collectionID != 0 {
		var tier []models.Product
		if err := s.DB.WithContext(ctx).
			Where("collection_id = ? AND id NOT IN ?", collectionID, exclude).
			Limit(limit).
			Find(&tier).Error; err != nil {
			return nil, fmt.Errorf("related: collection tier: %w", err)
		}
		for _, p := range tier {
			acc = append(acc, p)
			exclude = append(exclude, p.ID)
		}
	}

	if len(acc) < limit && categoryID != 0 {
		var tier []models.Product
		if err := s.DB.WithContext(ctx).
			Where("category_id = ? AND id NOT IN ?", categoryID, exclude).
			Limit(limit-len(acc)).
			Find(&tier).Error; err != nil {
			return nil, fmt.Errorf("related: category tier: %w", err)
		}
		for _, p := range tier {
			acc = append(acc, p)
			exclude = append(exclude, p.ID)
		}
	}

	if len(acc) < limit {
		var tier []models.Product
		if err := s.DB.WithContext(ctx).
			Where("id NOT IN ?", exclude).
			Order("created_at DESC").
			Limit(limit-len(acc)).
			Find(&tier).Error; err != nil {
			return nil, fmt.Errorf("related: recency tier: %w", err)
		}
		acc = append(acc, tier...)
	}

	rand.Shuffle(len(acc), func(i, j int) {
		acc[i], acc[j] = acc[j], acc[i]
	})

	if err := s.Cache.Set(ctx, key, acc); err != nil {
		logging.FromContext(ctx).Warn("related cache set failed", "error", err)
	}

	return acc, nil
}
