package store

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

type ReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// RecordReview persists post-purchase feedback. Rating must be within 1..5;
// product, buyer and seller must all exist.
func (s *ReviewStore) RecordReview(productID uint, buyerID, sellerID string, rating int, comment string) (*models.Review, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "product", Key: productID}
		}
		return nil, wrapStorage("fetch product", err)
	}
	for _, party := range []struct{ role, id string }{{"buyer", buyerID}, {"seller", sellerID}} {
		var user models.User
		if err := s.db.First(&user, "id = ?", party.id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &models.ReferenceError{Entity: party.role, Key: party.id}
			}
			return nil, wrapStorage("fetch "+party.role, err)
		}
	}

	review := models.Review{
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, wrapStorage("create review", err)
	}
	return &review, nil
}

// DeleteReview removes one review.
func (s *ReviewStore) DeleteReview(id uint) error {
	result := s.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return wrapStorage("delete review", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.ReferenceError{Entity: "review", Key: id}
	}
	return nil
}

// ListForProduct returns all reviews on a product, newest first.
func (s *ReviewStore) ListForProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, wrapStorage("list reviews", err)
	}
	return reviews, nil
}

// AverageRating computes the mean rating across a product's reviews,
// rounded to 2 decimal places. A product with no reviews averages to zero.
// Always recomputed from the review rows, never cached on the product.
func (s *ReviewStore) AverageRating(productID uint) (decimal.Decimal, error) {
	var ratings []int64
	if err := s.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error; err != nil {
		return decimal.Zero, wrapStorage("load ratings", err)
	}
	if len(ratings) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(r))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(2), nil
}
