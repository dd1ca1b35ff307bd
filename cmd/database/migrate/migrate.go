package migration

import (
	"fmt"
	"pantrypal/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		return fmt.Errorf("migrate food items: %w", err)
	}
	if err := db.AutoMigrate(&entities.Reminder{}); err != nil {
		return fmt.Errorf("migrate reminders: %w", err)
	}

	return nil
}
