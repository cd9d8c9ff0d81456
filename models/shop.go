package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Shop is the tenant boundary: every domain row carries a ShopID and
// every query is filtered by it.
type Shop struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string         `gorm:"size:100;not null" json:"name"`
	Code     string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Address  string         `gorm:"size:255" json:"address"`
	Phone    string         `gorm:"size:20" json:"phone"`
	Email    string         `gorm:"size:255" json:"email"`
	IsActive bool           `gorm:"default:true" json:"isActive"`
	Settings datatypes.JSON `gorm:"default:'{}'" json:"settings"`

	Users         []User               `gorm:"foreignKey:ShopID" json:"users,omitempty"`
	Subscriptions []ModuleSubscription `gorm:"foreignKey:ShopID" json:"subscriptions,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Shop) TableName() string {
	return "shops"
}

func (s *Shop) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
