package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer owns vehicles and work orders within one shop.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID    uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	Notes     string    `gorm:"type:text" json:"notes"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Vehicle is a customer's car on file.
type Vehicle struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"shopId"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Make       string     `gorm:"size:100" json:"make"`
	Model      string     `gorm:"size:100" json:"model"`
	Year       int        `json:"year"`
	Vin        string     `gorm:"size:17;index" json:"vin"`
	Plate      string     `gorm:"size:20" json:"plate"`
	Color      string     `gorm:"size:50" json:"color"`
	Mileage    int        `json:"mileage"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
