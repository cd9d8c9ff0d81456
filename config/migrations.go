package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"fixbay.io/fixbay/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260110_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Shop{}, &models.User{}, &models.Customer{},
					&models.Vehicle{}, &models.WorkOrder{}, &models.WorkOrderTimeEntry{},
					&models.InventoryItem{}, &models.WorkOrderActivity{})
			},
		},
		{
			ID: "20260117_add_job_lines_and_parts",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.JobLine{}, &models.WorkOrderPart{})
			},
		},
		{
			ID: "20260124_add_service_catalog",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ServiceCategory{}, &models.ServiceSubcategory{},
					&models.CatalogService{})
			},
		},
		{
			ID: "20260131_add_damage_areas",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DamageArea{})
			},
		},
		{
			ID: "20260214_add_billing_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ModuleSubscription{}, &models.WebhookLog{})
			},
		},
		{
			ID: "20260228_backfill_work_order_codes",
			Migrate: func(tx *gorm.DB) error {
				// Rows created before the display code existed get one
				// assigned from their creation date.
				var orders []models.WorkOrder
				if err := tx.Where("code = '' OR code IS NULL").Find(&orders).Error; err != nil {
					return err
				}
				for i := range orders {
					code := models.GenerateWorkOrderCode(orders[i].CreatedAt)
					if err := tx.Model(&orders[i]).UpdateColumn("code", code).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "20260307_add_work_order_version",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("ALTER TABLE work_orders ADD COLUMN IF NOT EXISTS version integer NOT NULL DEFAULT 1").Error; err != nil {
					return err
				}
				return nil
			},
		},
		{
			ID: "20260830_subscription_unique_per_shop",
			Migrate: func(tx *gorm.DB) error {
				// The original index covered module alone, which made a
				// module globally unique across shops.
				if err := tx.Exec("DROP INDEX IF EXISTS idx_shop_module").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_shop_module ON module_subscriptions (shop_id, module)").Error
			},
		},
	})
	return m.Migrate()
}
