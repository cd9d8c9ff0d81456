package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// GetAllUsers lists staff accounts. Super admins see every shop;
// everyone else is confined to their own by the shop scope middleware.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	params := models.ParseListParams(r)

	q := config.DB.Model(&models.User{}).Where("shop_id = ?", shopID)
	if role := r.URL.Query().Get("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var users []models.User
	err := q.Order(params.Order(map[string]bool{"created_at": true, "last_name": true, "email": true, "role": true})).
		Offset(params.Offset()).Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ListResponse{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Data:  users,
	})
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["userId"]

	var user models.User
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&user).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":        user,
		"permissions": user.Permissions(),
	})
}

type adminCreateUserReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// CreateUser is the admin path for onboarding staff; unlike Register it
// may assign any role below super_admin.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var req adminCreateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		http.Error(w, "email and a password of at least 8 characters are required", http.StatusBadRequest)
		return
	}
	if _, ok := models.RolePermissions[req.Role]; !ok || req.Role == models.RoleSuperAdmin {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	u := models.User{
		ShopID:       &shopID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

type adminUpdateUserReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateUser patches the mutable account fields. Nil fields are left
// untouched.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["userId"]

	var user models.User
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&user).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	var req adminUpdateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		if _, ok := models.RolePermissions[*req.Role]; !ok || *req.Role == models.RoleSuperAdmin {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// DeactivateUser disables login without destroying history. Accounts
// are never hard-deleted; work orders keep their technician reference.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["userId"]

	claims := middleware.GetClaims(r)
	if claims != nil && claims.UserID == id {
		http.Error(w, "cannot deactivate your own account", http.StatusBadRequest)
		return
	}

	res := config.DB.Model(&models.User{}).
		Where("id = ? AND shop_id = ?", id, shopID).
		Update("is_active", false)
	if res.Error != nil {
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
