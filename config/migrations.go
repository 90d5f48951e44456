package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/frota/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10032025_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.UserVehicle{}, &models.Vehicle{},
					&models.DailyLog{}, &models.GasStation{}, &models.RefuelingLog{},
					&models.Requisition{}, &models.Counter{})
			},
		},
		{
			ID: "18032025_unique_daily_log_per_vehicle_date",
			Migrate: func(tx *gorm.DB) error {
				// AutoMigrate already declares the composite index; this
				// backfills databases created before the tag existed.
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_logs_vehicle_date ON daily_logs (vehicle_id, date)").Error
			},
		},
		{
			ID: "02042025_index_refuelings_by_date",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_refueling_logs_date ON refueling_logs (date)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs (date)").Error
			},
		},
	})
	return m.Migrate()
}
