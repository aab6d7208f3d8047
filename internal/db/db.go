package db

import (
	"log"
	"time"

	"github.com/navaro-app/navaro-api/internal/config"
	"github.com/navaro-app/navaro-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Establishment{},
		&models.StaffMember{},
		&models.StaffBlock{},
		&models.Service{},
		&models.ServiceBundle{},
		&models.Appointment{},
		&models.UserDebt{},
		&models.UserWallet{},
		&models.WalletTransaction{},
		&models.QueueEntry{},
		&models.StaffGoal{},
		&models.Payment{},
		&models.Notification{},
		&models.SystemSetting{},
		&models.PortfolioItem{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
