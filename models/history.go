package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BuyerPurchaseHistory is the buyer-side half of the purchase ledger. The
// product and seller references are nulled when the referenced row is
// deleted; the history row itself survives.
type BuyerPurchaseHistory struct {
	ID          uint      `gorm:"primaryKey"`
	BuyerID     string    `gorm:"not null;index"`
	Buyer       *User     `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	ProductID   *uint     `gorm:"index"`
	Product     *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	SellerID    *string
	Seller      *User     `gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL"`
	PurchasedAt time.Time
}

// BeforeSave derives the seller from the product's owner when the caller did
// not supply one. Runs on every save, so re-saving a row with a null seller
// and a still-present product derives it again.
func (h *BuyerPurchaseHistory) BeforeSave(tx *gorm.DB) error {
	if h.SellerID != nil || h.ProductID == nil {
		return nil
	}
	var product Product
	err := tx.Session(&gorm.Session{NewDB: true}).First(&product, *h.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	h.SellerID = &product.OwnerID
	return nil
}

func (h *BuyerPurchaseHistory) String() string {
	product := "Deleted Product"
	if h.Product != nil {
		product = h.Product.Title
	}
	seller := "Unknown"
	if h.Seller != nil {
		seller = h.Seller.Username
	}
	buyer := h.BuyerID
	if h.Buyer != nil {
		buyer = h.Buyer.Username
	}
	return fmt.Sprintf("%s bought %s from %s", buyer, product, seller)
}

// SellerPurchaseHistory is the seller-side half of the ledger. Unlike the
// buyer side there is no auto-derivation of SoldTo; callers supply it.
type SellerPurchaseHistory struct {
	ID        uint      `gorm:"primaryKey"`
	SellerID  string    `gorm:"not null;index"`
	Seller    *User     `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	ProductID *uint     `gorm:"index"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	SoldToID  *string
	SoldTo    *User     `gorm:"foreignKey:SoldToID;constraint:OnDelete:SET NULL"`
	SoldAt    time.Time
}

func (h *SellerPurchaseHistory) String() string {
	product := "Deleted Product"
	if h.Product != nil {
		product = h.Product.Title
	}
	soldTo := "Unknown"
	if h.SoldTo != nil {
		soldTo = h.SoldTo.Username
	}
	seller := h.SellerID
	if h.Seller != nil {
		seller = h.Seller.Username
	}
	return fmt.Sprintf("%s sold %s to %s", seller, product, soldTo)
}
