package main

import (
	"log"

	"github.com/quickbazaar/marketplace-core/config"
)

func main() {
	log.Println("✅ Starting marketplace-core migration...")

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	log.Println("🚀 Schema ready")
}
