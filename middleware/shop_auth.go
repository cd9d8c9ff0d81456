package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/models"
	"fixbay.io/fixbay/utils"
)

// ShopScope resolves the tenant for the request and stashes its id in
// context. Every downstream query filters by this id. Resolution
// order: URL path var, query parameter, X-Shop-Code header, and
// finally the shop on the user's own account.
func ShopScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		shopID := shopIDFromRequest(r)
		if shopID == uuid.Nil && claims.ShopID != "" {
			shopID, _ = uuid.Parse(claims.ShopID)
		}
		if shopID == uuid.Nil {
			http.Error(w, "shop not specified", http.StatusBadRequest)
			return
		}

		// Users are confined to their own shop unless they are
		// platform admins.
		if claims.Role != models.RoleSuperAdmin && claims.ShopID != "" && claims.ShopID != shopID.String() {
			http.Error(w, "no access to this shop", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), shopIDKey, shopID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetShopID returns the tenant id resolved by ShopScope, or uuid.Nil.
func GetShopID(r *http.Request) uuid.UUID {
	if id, ok := r.Context().Value(shopIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetUserPermissions returns the permission patterns for the request's
// role.
func GetUserPermissions(r *http.Request) []string {
	if c := GetClaims(r); c != nil {
		return models.RolePermissions[c.Role]
	}
	return nil
}

func hasPermission(role, required string) bool {
	return utils.HasPermission(models.RolePermissions[role], required)
}

// shopIDFromRequest extracts the shop from path var, query parameter,
// or header. Accepts either a UUID or a shop code.
func shopIDFromRequest(r *http.Request) uuid.UUID {
	vars := mux.Vars(r)
	if v, ok := vars["shopCode"]; ok {
		return resolveShopIdentifier(v)
	}
	if v := r.URL.Query().Get("shop_id"); v != "" {
		return resolveShopIdentifier(v)
	}
	if v := r.Header.Get("X-Shop-Code"); v != "" {
		return resolveShopIdentifier(v)
	}
	return uuid.Nil
}

// resolveShopIdentifier converts a shop code or UUID into the shop id.
func resolveShopIdentifier(identifier string) uuid.UUID {
	if id, err := uuid.Parse(identifier); err == nil {
		return id
	}
	var shop models.Shop
	if err := config.DB.Where("UPPER(code) = UPPER(?) AND is_active = ?", identifier, true).
		First(&shop).Error; err == nil {
		return shop.ID
	}
	return uuid.Nil
}
