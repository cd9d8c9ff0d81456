package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory is the top level of the service catalog
// (Engine, Brakes, Electrical, ...).
type ServiceCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID       uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:255" json:"description"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`

	Subcategories []ServiceSubcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// ServiceSubcategory is the middle catalog level.
type ServiceSubcategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:255" json:"description"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`

	Services []CatalogService `gorm:"foreignKey:SubcategoryID" json:"services,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ServiceSubcategory) TableName() string {
	return "service_subcategories"
}

func (s *ServiceSubcategory) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// CatalogService is a sellable service with default labor figures.
// Picking one pre-fills a job line; the line's fields remain editable
// afterwards.
type CatalogService struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubcategoryID      uuid.UUID `gorm:"type:uuid;index;not null" json:"subcategoryId"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	DefaultLaborHours  float64   `gorm:"default:0" json:"defaultLaborHours"`
	DefaultLaborRate   float64   `gorm:"type:decimal(10,2);default:0" json:"defaultLaborRate"`
	IsActive           bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CatalogService) TableName() string {
	return "catalog_services"
}

func (s *CatalogService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
