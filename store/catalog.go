package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// CreateProduct persists a new listing. The owner must exist; category and
// price are validated before the write.
func (s *CatalogStore) CreateProduct(p *models.Product) error {
	var owner models.User
	if err := s.db.First(&owner, "id = ?", p.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ReferenceError{Entity: "user", Key: p.OwnerID}
		}
		return wrapStorage("fetch owner", err)
	}
	if err := s.db.Create(p).Error; err != nil {
		return wrapStorage("create product", err)
	}
	return nil
}

// UpdateProduct saves a modified listing. Validation runs again on save.
func (s *CatalogStore) UpdateProduct(p *models.Product) error {
	if err := s.db.Save(p).Error; err != nil {
		return wrapStorage("update product", err)
	}
	return nil
}

func (s *CatalogStore) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Owner").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.ReferenceError{Entity: "product", Key: id}
		}
		return nil, wrapStorage("fetch product", err)
	}
	return &product, nil
}

func (s *CatalogStore) ListByOwner(ownerID string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, wrapStorage("list products", err)
	}
	return products, nil
}

// DeleteProduct removes a listing. Reviews and cart items referencing it go
// with it; ledger rows keep their history with the product reference nulled.
func (s *CatalogStore) DeleteProduct(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return wrapStorage("delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.ReferenceError{Entity: "product", Key: id}
	}
	return nil
}
