package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey"`
	UserID    string     `gorm:"uniqueIndex;not null"` // Enforces ONE cart per user
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // Cascade delete items if cart is deleted
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem carries no Cart back-pointer: Cart's primary key field is named
// CartID, same as the column here, and a belongs-to declared against it
// resolves as an inverted has-one. The cart constraint lives on Cart.Items.
type CartItem struct {
	ID        uint     `gorm:"primaryKey"`
	CartID    uint     `gorm:"index"` // Faster queries
	ProductID uint     `gorm:"not null"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int      `gorm:"default:1"`

	// Snapshot of the product at last save, intentionally not kept live.
	ProductName string
	SellerName  string
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)"`

	AddedAt time.Time
}

// BeforeSave refreshes the snapshot fields from the current product row.
// It runs on every save, so a quantity-only update still overwrites any
// staleness. A missing product row leaves the snapshot unchanged.
func (ci *CartItem) BeforeSave(tx *gorm.DB) error {
	if ci.ProductID == 0 {
		return nil
	}
	var product Product
	err := tx.Session(&gorm.Session{NewDB: true}).Preload("Owner").First(&product, ci.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	ci.ProductName = product.Title
	if product.Owner != nil {
		ci.SellerName = product.Owner.Username
	}
	ci.Amount = product.Price
	return nil
}
