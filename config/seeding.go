package config

import (
	"errors"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fixbay.io/fixbay/models"
)

// Seed creates the demo shop, the platform admin, the default service
// catalog, and trial subscriptions. Each step skips when its data
// already exists, so Seed is safe to run on every start.
func Seed(db *gorm.DB) error {
	shop, err := seedDemoShop(db)
	if err != nil {
		return err
	}
	if err := seedAdminUser(db, shop); err != nil {
		return err
	}
	if err := seedCatalog(db, shop); err != nil {
		return err
	}
	return seedSubscriptions(db, shop)
}

func seedDemoShop(db *gorm.DB) (*models.Shop, error) {
	var shop models.Shop
	err := db.Where("code = ?", "DEMO").First(&shop).Error
	if err == nil {
		return &shop, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	shop = models.Shop{
		Name:     "Demo Auto Repair",
		Code:     "DEMO",
		IsActive: true,
		Settings: []byte(`{"laborRate": 95.0, "taxRate": 8.25}`),
	}
	if err := db.Create(&shop).Error; err != nil {
		return nil, err
	}
	log.Println("[SEED] created demo shop")
	return &shop, nil
}

func seedAdminUser(db *gorm.DB, shop *models.Shop) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("[SEED] ADMIN_PASSWORD not set, using default - change it")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		FirstName:    "Platform",
		LastName:     "Admin",
		Email:        "admin@fixbay.io",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("[SEED] created platform admin admin@fixbay.io")
	return nil
}

// defaultCatalog is the starter service catalog every new install gets.
var defaultCatalog = map[string]map[string][]struct {
	Name  string
	Hours float64
	Rate  float64
}{
	"Engine": {
		"Oil & Fluids": {
			{"Oil Change - Conventional", 0.5, 95},
			{"Oil Change - Synthetic", 0.5, 95},
			{"Coolant Flush", 1.0, 95},
		},
		"Diagnostics": {
			{"Check Engine Light Diagnosis", 1.0, 110},
			{"Compression Test", 1.5, 110},
		},
	},
	"Brakes": {
		"Pads & Rotors": {
			{"Front Brake Pad Replacement", 1.5, 95},
			{"Rear Brake Pad Replacement", 1.5, 95},
			{"Rotor Resurfacing", 1.0, 95},
		},
		"Hydraulics": {
			{"Brake Fluid Flush", 1.0, 95},
			{"Caliper Replacement", 2.0, 95},
		},
	},
	"Electrical": {
		"Battery & Charging": {
			{"Battery Replacement", 0.5, 95},
			{"Alternator Replacement", 2.0, 110},
		},
	},
	"Suspension": {
		"Steering": {
			{"Wheel Alignment", 1.0, 95},
			{"Tie Rod Replacement", 1.5, 95},
		},
	},
}

func seedCatalog(db *gorm.DB, shop *models.Shop) error {
	var count int64
	if err := db.Model(&models.ServiceCategory{}).Where("shop_id = ?", shop.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for catName, subs := range defaultCatalog {
		cat := models.ServiceCategory{ShopID: shop.ID, Name: catName, IsActive: true}
		if err := db.Create(&cat).Error; err != nil {
			return err
		}
		for subName, services := range subs {
			sub := models.ServiceSubcategory{CategoryID: cat.ID, Name: subName, IsActive: true}
			if err := db.Create(&sub).Error; err != nil {
				return err
			}
			for _, svc := range services {
				row := models.CatalogService{
					SubcategoryID:     sub.ID,
					Name:              svc.Name,
					DefaultLaborHours: svc.Hours,
					DefaultLaborRate:  svc.Rate,
					IsActive:          true,
				}
				if err := db.Create(&row).Error; err != nil {
					return err
				}
			}
		}
	}
	log.Println("[SEED] created default service catalog")
	return nil
}

func seedSubscriptions(db *gorm.DB, shop *models.Shop) error {
	var count int64
	if err := db.Model(&models.ModuleSubscription{}).Where("shop_id = ?", shop.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	trialEnd := time.Now().AddDate(0, 0, 30)
	for _, module := range []string{models.ModuleWorkOrders, models.ModuleDamage, models.ModuleCatalog, models.ModuleAnalytics} {
		sub := models.ModuleSubscription{
			ShopID:      shop.ID,
			Module:      module,
			Status:      models.SubTrial,
			TrialEndsAt: &trialEnd,
		}
		if err := db.Create(&sub).Error; err != nil {
			return err
		}
	}
	log.Println("[SEED] created trial subscriptions")
	return nil
}
