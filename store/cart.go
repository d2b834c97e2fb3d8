package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// EnsureCart returns the user's cart, creating it on first use. Every user
// has at most one cart.
func (s *CartStore) EnsureCart(userID string) (*models.Cart, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "user", Key: userID}
		}
		return nil, wrapStorage("fetch user", err)
	}

	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStorage("fetch cart", err)
	}

	cart = models.Cart{UserID: userID}
	if err := s.db.Create(&cart).Error; err != nil {
		return nil, wrapStorage("create cart", err)
	}
	return &cart, nil
}

// AddOrUpdateItem creates or updates the line item for product in the given
// cart. The product snapshot fields are recomputed as part of the same
// write, whether the item is new or only its quantity changed.
func (s *CartStore) AddOrUpdateItem(cartID uint, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "product", Key: productID}
		}
		return nil, wrapStorage("fetch product", err)
	}

	var cart models.Cart
	if err := s.db.First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "cart", Key: cartID}
		}
		return nil, wrapStorage("fetch cart", err)
	}

	var item models.CartItem
	err := s.db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrapStorage("fetch cart item", err)
		}
		// New cart item
		item = models.CartItem{
			CartID:    cart.CartID,
			ProductID: product.ID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, wrapStorage("add cart item", err)
		}
		return &item, nil
	}

	// Update existing cart item quantity and time
	item.Quantity = quantity
	item.AddedAt = time.Now()
	if err := s.db.Save(&item).Error; err != nil {
		return nil, wrapStorage("update cart item", err)
	}
	return &item, nil
}

// RemoveItem deletes the line item for product from the cart.
func (s *CartStore) RemoveItem(cartID uint, productID uint) error {
	result := s.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return wrapStorage("delete cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.ReferenceError{Entity: "cart item", Key: productID}
	}
	return nil
}

// Clear removes every item from the cart.
func (s *CartStore) Clear(cartID uint) error {
	if err := s.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return wrapStorage("clear cart", err)
	}
	return nil
}

// DeleteCart removes the cart itself; its items cascade with it.
func (s *CartStore) DeleteCart(cartID uint) error {
	result := s.db.Delete(&models.Cart{}, cartID)
	if result.Error != nil {
		return wrapStorage("delete cart", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.ReferenceError{Entity: "cart", Key: cartID}
	}
	return nil
}

// Get fetches the cart with its items.
func (s *CartStore) Get(cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items").First(&cart, cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "cart", Key: cartID}
		}
		return nil, wrapStorage("fetch cart", err)
	}
	return &cart, nil
}
