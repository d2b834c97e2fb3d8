package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	BuyerID   string    `gorm:"not null" json:"buyer_id"`
	Buyer     *User     `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
	SellerID  string    `gorm:"not null" json:"seller_id"`
	Seller    *User     `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeSave enforces the 1..5 rating bound before anything is written.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

func (r *Review) String() string {
	buyer := r.BuyerID
	if r.Buyer != nil {
		buyer = r.Buyer.Username
	}
	product := "Deleted Product"
	if r.Product != nil {
		product = r.Product.Title
	}
	return fmt.Sprintf("%s rated %s (%d/5)", buyer, product, r.Rating)
}
