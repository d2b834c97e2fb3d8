package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

// LedgerStore records completed sales into the dual-sided purchase history.
// The buyer-side and seller-side writes are independent; checkout
// orchestration lives outside this core and triggers both.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// RecordBuyerPurchase writes the buyer-side ledger row. When sellerID is nil
// and the product still exists, the seller is derived from the product's
// owner at save time.
func (s *LedgerStore) RecordBuyerPurchase(buyerID string, productID *uint, sellerID *string) (*models.BuyerPurchaseHistory, error) {
	if err := s.userExists("buyer", buyerID); err != nil {
		return nil, err
	}
	h := models.BuyerPurchaseHistory{
		BuyerID:     buyerID,
		ProductID:   productID,
		SellerID:    sellerID,
		PurchasedAt: time.Now(),
	}
	if err := s.db.Create(&h).Error; err != nil {
		return nil, wrapStorage("record buyer purchase", err)
	}
	return &h, nil
}

// RecordSellerSale writes the seller-side ledger row. SoldTo is never
// derived; callers supply it or leave it nil.
func (s *LedgerStore) RecordSellerSale(sellerID string, productID *uint, soldToID *string) (*models.SellerPurchaseHistory, error) {
	if err := s.userExists("seller", sellerID); err != nil {
		return nil, err
	}
	h := models.SellerPurchaseHistory{
		SellerID:  sellerID,
		ProductID: productID,
		SoldToID:  soldToID,
		SoldAt:    time.Now(),
	}
	if err := s.db.Create(&h).Error; err != nil {
		return nil, wrapStorage("record seller sale", err)
	}
	return &h, nil
}

// BuyerHistory lists a user's purchases, newest first. Rows whose product or
// seller has since been deleted come back with those references nil.
func (s *LedgerStore) BuyerHistory(buyerID string) ([]models.BuyerPurchaseHistory, error) {
	var rows []models.BuyerPurchaseHistory
	if err := s.db.
		Preload("Product").
		Preload("Seller").
		Where("buyer_id = ?", buyerID).
		Order("purchased_at desc").
		Find(&rows).Error; err != nil {
		return nil, wrapStorage("list buyer history", err)
	}
	return rows, nil
}

// SellerHistory lists a user's sales, newest first.
func (s *LedgerStore) SellerHistory(sellerID string) ([]models.SellerPurchaseHistory, error) {
	var rows []models.SellerPurchaseHistory
	if err := s.db.
		Preload("Product").
		Preload("SoldTo").
		Where("seller_id = ?", sellerID).
		Order("sold_at desc").
		Find(&rows).Error; err != nil {
		return nil, wrapStorage("list seller history", err)
	}
	return rows, nil
}

func (s *LedgerStore) userExists(role, id string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ReferenceError{Entity: role, Key: id}
		}
		return wrapStorage("fetch "+role, err)
	}
	return nil
}
