package database

import (
	"guzo_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.HostProfile{},
		&models.CulturalOffering{},
		&models.Booking{},
		&models.Payment{},
		&models.PaymentCounter{},
	)
}
