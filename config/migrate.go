package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/quickbazaar/marketplace-core/models"
)

// Migrate creates or updates all tables for the marketplace data model and
// logs the delete-policy contract each relation carries.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Permission{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.BuyerPurchaseHistory{},
		&models.SellerPurchaseHistory{},
		&models.Review{},
	)
	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	for _, fk := range models.ForeignKeyPolicies() {
		log.Printf("FK %T.%s ON DELETE %s", fk.Model, fk.Relation, fk.Policy)
	}
	log.Println("Database migrations completed successfully...")
	return nil
}
