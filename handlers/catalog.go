package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// GetServiceCatalog returns the full category -> subcategory -> service
// tree for the shop. The tree is small (tens of categories) so no
// pagination.
func GetServiceCatalog(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var categories []models.ServiceCategory
	err := config.DB.Where("shop_id = ?", shopID).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Preload("Subcategories.Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func CreateServiceCategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var c models.ServiceCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if c.Name == "" {
		http.Error(w, "category name is required", http.StatusBadRequest)
		return
	}
	c.ID = uuid.Nil
	c.ShopID = shopID
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func UpdateServiceCategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["categoryId"]

	var existing models.ServiceCategory
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	var in models.ServiceCategory
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "category name is required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"name":          in.Name,
		"description":   in.Description,
		"display_order": in.DisplayOrder,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// DeleteServiceCategory removes a category and everything under it.
func DeleteServiceCategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["categoryId"]

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var subIDs []uuid.UUID
		if err := tx.Model(&models.ServiceSubcategory{}).
			Where("category_id = ?", id).Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Where("subcategory_id IN ?", subIDs).
				Delete(&models.CatalogService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", subIDs).
				Delete(&models.ServiceSubcategory{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.ServiceCategory{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func CreateServiceSubcategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	categoryID := mux.Vars(r)["categoryId"]

	var cat models.ServiceCategory
	if err := config.DB.Where("id = ? AND shop_id = ?", categoryID, shopID).First(&cat).Error; err != nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	var s models.ServiceSubcategory
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.Name == "" {
		http.Error(w, "subcategory name is required", http.StatusBadRequest)
		return
	}
	s.ID = uuid.Nil
	s.CategoryID = cat.ID
	if err := config.DB.Create(&s).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

func UpdateServiceSubcategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["subcategoryId"]

	var existing models.ServiceSubcategory
	err := config.DB.
		Joins("JOIN service_categories ON service_categories.id = service_subcategories.category_id").
		Where("service_subcategories.id = ? AND service_categories.shop_id = ?", id, shopID).
		First(&existing).Error
	if err != nil {
		http.Error(w, "subcategory not found", http.StatusNotFound)
		return
	}
	var in models.ServiceSubcategory
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "subcategory name is required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"name":          in.Name,
		"description":   in.Description,
		"display_order": in.DisplayOrder,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

func DeleteServiceSubcategory(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["subcategoryId"]

	var existing models.ServiceSubcategory
	err := config.DB.
		Joins("JOIN service_categories ON service_categories.id = service_subcategories.category_id").
		Where("service_subcategories.id = ? AND service_categories.shop_id = ?", id, shopID).
		First(&existing).Error
	if err != nil {
		http.Error(w, "subcategory not found", http.StatusNotFound)
		return
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subcategory_id = ?", existing.ID).
			Delete(&models.CatalogService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func CreateCatalogService(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	subcategoryID := mux.Vars(r)["subcategoryId"]

	var sub models.ServiceSubcategory
	err := config.DB.
		Joins("JOIN service_categories ON service_categories.id = service_subcategories.category_id").
		Where("service_subcategories.id = ? AND service_categories.shop_id = ?", subcategoryID, shopID).
		First(&sub).Error
	if err != nil {
		http.Error(w, "subcategory not found", http.StatusNotFound)
		return
	}
	var svc models.CatalogService
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if svc.Name == "" {
		http.Error(w, "service name is required", http.StatusBadRequest)
		return
	}
	if svc.DefaultLaborHours < 0 || svc.DefaultLaborRate < 0 {
		http.Error(w, "labor hours and rate must be non-negative", http.StatusBadRequest)
		return
	}
	svc.ID = uuid.Nil
	svc.SubcategoryID = sub.ID
	if err := config.DB.Create(&svc).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(svc)
}

func UpdateCatalogService(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["serviceId"]

	var existing models.CatalogService
	err := config.DB.
		Joins("JOIN service_subcategories ON service_subcategories.id = catalog_services.subcategory_id").
		Joins("JOIN service_categories ON service_categories.id = service_subcategories.category_id").
		Where("catalog_services.id = ? AND service_categories.shop_id = ?", id, shopID).
		First(&existing).Error
	if err != nil {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	var in models.CatalogService
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "service name is required", http.StatusBadRequest)
		return
	}
	if in.DefaultLaborHours < 0 || in.DefaultLaborRate < 0 {
		http.Error(w, "labor hours and rate must be non-negative", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"name":                in.Name,
		"description":         in.Description,
		"default_labor_hours": in.DefaultLaborHours,
		"default_labor_rate":  in.DefaultLaborRate,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

func DeleteCatalogService(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["serviceId"]

	var existing models.CatalogService
	err := config.DB.
		Joins("JOIN service_subcategories ON service_subcategories.id = catalog_services.subcategory_id").
		Joins("JOIN service_categories ON service_categories.id = service_subcategories.category_id").
		Where("catalog_services.id = ? AND service_categories.shop_id = ?", id, shopID).
		First(&existing).Error
	if err != nil {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&existing).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
