package migration

import (
	"fmt"

	"gorm.io/gorm"

	"pantryfit-backend/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.ImageUpload{},
		&entities.DetectionResult{},
		&entities.InventoryItem{},
		&entities.ConsumptionLog{},
		&entities.GeneratedRecipe{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrating %T: %w", model, err)
		}
	}
	return nil
}
