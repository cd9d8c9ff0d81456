package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names used across the API. Permissions are derived from the
// role via RolePermissions; super_admin bypasses every check.
const (
	RoleSuperAdmin    = "super_admin"
	RoleShopAdmin     = "shop_admin"
	RoleServiceWriter = "service_writer"
	RoleTechnician    = "technician"
)

// User is a staff account. Technicians are users too: work orders
// reference them through TechnicianID.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID       *uuid.UUID `gorm:"type:uuid;index" json:"shopId,omitempty"` // nil for platform-level admins
	Shop         *Shop      `gorm:"foreignKey:ShopID" json:"-"`
	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100" json:"lastName"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"size:20" json:"phone"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:50;not null;default:technician" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "profiles"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// RolePermissions maps each role to its permission patterns. Patterns
// use resource:action with * wildcards (see utils.MatchesPermission).
var RolePermissions = map[string][]string{
	RoleSuperAdmin:    {"*:*"},
	RoleShopAdmin:     {"workorder:*", "jobline:*", "part:*", "damage:*", "catalog:*", "customer:*", "vehicle:*", "user:*", "subscription:read", "analytics:read", "file:create"},
	RoleServiceWriter: {"workorder:*", "jobline:*", "part:*", "damage:*", "catalog:read", "customer:*", "vehicle:*", "analytics:read", "file:create"},
	RoleTechnician:    {"workorder:read", "workorder:update", "jobline:read", "jobline:update", "part:read", "damage:*", "catalog:read", "file:create"},
}

// Permissions returns the permission patterns for the user's role.
func (u *User) Permissions() []string {
	return RolePermissions[u.Role]
}
