package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// GetAllCustomers lists the shop's customers with their vehicles,
// paginated and searchable by name, email or phone.
func GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	params := models.ParseListParams(r)

	q := config.DB.Model(&models.Customer{}).Where("shop_id = ?", shopID)
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var customers []models.Customer
	err := q.Preload("Vehicles").
		Order(params.Order(map[string]bool{"created_at": true, "last_name": true, "email": true})).
		Offset(params.Offset()).Limit(params.Limit).
		Find(&customers).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ListResponse{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Data:  customers,
	})
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["customerId"]

	var customer models.Customer
	err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).
		Preload("Vehicles").First(&customer).Error
	if err != nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if c.FirstName == "" && c.LastName == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}
	c.ID = uuid.Nil
	c.ShopID = shopID
	for i := range c.Vehicles {
		c.Vehicles[i].ID = uuid.Nil
		c.Vehicles[i].ShopID = shopID
	}
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["customerId"]

	var existing models.Customer
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	var in models.Customer
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.FirstName == "" && in.LastName == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"phone":      in.Phone,
		"address":    in.Address,
		"notes":      in.Notes,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["customerId"]

	res := config.DB.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.Customer{})
	if res.Error != nil {
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateVehicle adds a vehicle to a customer's file.
func CreateVehicle(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	customerID := mux.Vars(r)["customerId"]

	var customer models.Customer
	if err := config.DB.Where("id = ? AND shop_id = ?", customerID, shopID).First(&customer).Error; err != nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if v.Make == "" || v.Model == "" {
		http.Error(w, "vehicle make and model are required", http.StatusBadRequest)
		return
	}
	v.ID = uuid.Nil
	v.ShopID = shopID
	v.CustomerID = &customer.ID
	if err := config.DB.Create(&v).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

func UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["vehicleId"]

	var existing models.Vehicle
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	var in models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Make == "" || in.Model == "" {
		http.Error(w, "vehicle make and model are required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"make":    in.Make,
		"model":   in.Model,
		"year":    in.Year,
		"vin":     in.Vin,
		"plate":   in.Plate,
		"color":   in.Color,
		"mileage": in.Mileage,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

func DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["vehicleId"]

	res := config.DB.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.Vehicle{})
	if res.Error != nil {
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
