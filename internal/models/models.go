package models

import (
	"time"
)

type Product struct {
	ID           uint             `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string           `gorm:"not null"                  json:"name"`
	Slug         string           `gorm:"uniqueIndex;not null"      json:"slug"`
	Description  string           `json:"description"`
	CategoryID   uint             `gorm:"index"                     json:"category_id"`
	CollectionID uint             `gorm:"index"                     json:"collection_id"`
	Variants     []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type ProductVariant struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Label     string  `gorm:"not null"       json:"label"`
	Price     float64 `gorm:"not null"       json:"price"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey"           json:"id"`
	Name string `gorm:"not null"             json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

type Collection struct {
	ID   uint   `gorm:"primaryKey"           json:"id"`
	Name string `gorm:"not null"             json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

type Article struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	Title     string    `gorm:"not null"             json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Banner struct {
	ID        uint   `gorm:"primaryKey"   json:"id"`
	Title     string `json:"title"`
	ImageURL  string `gorm:"not null"     json:"image_url"`
	TargetURL string `json:"target_url"`
	Active    bool   `gorm:"default:true" json:"active"`
	Position  int    `json:"position"`
}

type Faq struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Question string `gorm:"not null"   json:"question"`
	Answer   string `gorm:"not null"   json:"answer"`
	Position int    `json:"position"`
}

type SeoSetting struct {
	ID          uint   `gorm:"primaryKey"           json:"id"`
	Page        string `gorm:"uniqueIndex;not null" json:"page"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// VariantID 0 means "no variant chosen"; the column stays NOT NULL so the
// composite unique index treats two variant-less adds as the same line.
type CartItem struct {
	ID        uint `gorm:"primaryKey"                                   json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_line"           json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_line"           json:"product_id"`
	VariantID uint `gorm:"not null;default:0;uniqueIndex:idx_cart_line" json:"variant_id"`
	Quantity  uint `gorm:"not null;check:quantity > 0"                  json:"quantity"`
}
