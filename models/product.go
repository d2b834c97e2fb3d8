package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategoryOther       Category = "Other"
)

// Valid reports whether c is one of the closed set of listing categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome, CategoryOther:
		return true
	}
	return false
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     string          `gorm:"not null;index" json:"owner_id"`
	Owner       *User           `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Category    Category        `gorm:"type:VARCHAR(50);not null" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeSave rejects invalid listings before anything hits the database.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if !p.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "must be one of Electronics, Clothing, Books, Home, Other"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (p *Product) String() string {
	return p.Title
}
