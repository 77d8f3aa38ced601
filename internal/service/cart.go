package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafidhia/storefront/internal/models"
)

type CartService struct {
	DB *gorm.DB
}

func (s *CartService) List(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("cart: list: %w", err)
	}
	return items, nil
}

// Add inserts a cart line or merges quantity into the existing line for the
// same (user, product, variant) tuple. The merge is a single upsert backed
// by the composite unique index, so concurrent adds cannot duplicate a line.
func (s *CartService) Add(ctx context.Context, userID, productID, variantID, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}

	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("cart: product lookup: %w", err)
	}

	if variantID != 0 {
		var variant models.ProductVariant
		if err := s.DB.WithContext(ctx).
			Where("id = ? AND product_id = ?", variantID, productID).
			First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: variant %d of product %d", ErrNotFound, variantID, productID)
			}
			return nil, fmt.Errorf("cart: variant lookup: %w", err)
		}
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("cart: upsert: %w", err)
	}

	// Re-read: on the conflict path Create leaves the pre-merge quantity in
	// the struct.
	var merged models.CartItem
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, productID, variantID).
		First(&merged).Error; err != nil {
		return nil, fmt.Errorf("cart: reload after upsert: %w", err)
	}
	return &merged, nil
}

// UpdateQuantity replaces (not merges) the quantity on a line owned by userID.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if lineID == 0 {
		return nil, fmt.Errorf("%w: cart line id is required", ErrValidation)
	}

	res := s.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, fmt.Errorf("cart: update quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: cart line %d", ErrNotFound, lineID)
	}

	var item models.CartItem
	if err := s.DB.WithContext(ctx).First(&item, lineID).Error; err != nil {
		return nil, fmt.Errorf("cart: reload after update: %w", err)
	}
	return &item, nil
}

// Remove deletes a line. Removing an absent line succeeds: repeated deletes
// are indistinguishable to the caller.
func (s *CartService) Remove(ctx context.Context, userID, lineID uint) error {
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("cart: delete: %w", err)
	}
	return nil
}
