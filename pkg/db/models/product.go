package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable good. SKU is unique per business. Stock quantities
// are decimals so bulk goods (pipe by the foot, wire by the spool) fit.
type Product struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID     uuid.UUID        `gorm:"column:business_id;type:uuid;not null"`
	SKU            string           `gorm:"column:sku;not null"`
	Name           string           `gorm:"column:name;not null"`
	Description    string           `gorm:"column:description;not null;default:''"`
	UnitPrice      decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	Cost           *decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
	QuantityOnHand decimal.Decimal  `gorm:"column:quantity_on_hand;type:numeric(12,2);not null;default:0"`
	ReorderPoint   *decimal.Decimal `gorm:"column:reorder_point;type:numeric(12,2)"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant is a purchasable variation of a product. PriceDelta is
// added to the parent's unit price.
type ProductVariant struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU            string          `gorm:"column:sku;not null"`
	Name           string          `gorm:"column:name;not null"`
	PriceDelta     decimal.Decimal `gorm:"column:price_delta;type:numeric(12,2);not null;default:0"`
	QuantityOnHand decimal.Decimal `gorm:"column:quantity_on_hand;type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// ProductBundle groups products sold together at a bundle price.
type ProductBundle struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessID  uuid.UUID       `gorm:"column:business_id;type:uuid;not null"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	BundlePrice decimal.Decimal `gorm:"column:bundle_price;type:numeric(12,2);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductBundleItem links a product (and quantity) into a bundle.
type ProductBundleItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BundleID  uuid.UUID       `gorm:"column:bundle_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null;default:1"`
}
