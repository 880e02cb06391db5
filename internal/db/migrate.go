package db

import (
	"marketpnl/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Universe{},
		&models.Market{},
		&models.PositionChange{},
		&models.Fill{},
		&models.ShareBalance{},
		&models.OpenOrder{},
		&models.DisputeRecord{},
		&models.RedeemRecord{},
		&models.PortfolioSnapshot{},
	)
}
