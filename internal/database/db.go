package database

import (
	"teasupply-backend/internal/config"
	"teasupply-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the connection pool and migrates the schema. The returned
// handle is injected into every component; there is no package-level DB.
func Init(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		// surface unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	if err := db.AutoMigrate(
		&models.Supplier{},
		&models.Driver{},
		&models.Product{},
		&models.Collection{},
		&models.Loan{},
		&models.Advance{},
		&models.Order{},
		&models.Payment{},
		&models.SupplierNotification{},
		&models.DriverNotification{},
		&models.RateConfig{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	log.Info("database connected, migration complete")
	return db
}

// Close releases the underlying pool. Called once at shutdown.
func Close(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("closing database failed")
	}
}
