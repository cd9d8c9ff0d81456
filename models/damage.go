package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DamageView names one side of the vehicle diagram.
type DamageView string

const (
	ViewFront DamageView = "front"
	ViewBack  DamageView = "back"
	ViewTop   DamageView = "top"
	ViewSide  DamageView = "side"
)

// DamageType classifies observed physical damage.
type DamageType string

const (
	DamageDent      DamageType = "dent"
	DamageScratch   DamageType = "scratch"
	DamageRust      DamageType = "rust"
	DamagePaint     DamageType = "paint_damage"
	DamageCollision DamageType = "collision"
	DamageWear      DamageType = "wear"
	DamageOther     DamageType = "other"
)

// DamageSeverity grades a damage marker.
type DamageSeverity string

const (
	SeverityMinor    DamageSeverity = "minor"
	SeverityModerate DamageSeverity = "moderate"
	SeveritySevere   DamageSeverity = "severe"
)

var damageViews = map[DamageView]bool{
	ViewFront: true, ViewBack: true, ViewTop: true, ViewSide: true,
}

var damageTypes = map[DamageType]bool{
	DamageDent: true, DamageScratch: true, DamageRust: true, DamagePaint: true,
	DamageCollision: true, DamageWear: true, DamageOther: true,
}

var damageSeverities = map[DamageSeverity]bool{
	SeverityMinor: true, SeverityModerate: true, SeveritySevere: true,
}

// DamageArea is one annotated point on a vehicle diagram. X and Y are
// pixel coordinates within the named view's diagram image.
type DamageArea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"workOrderId"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`

	View          DamageView     `gorm:"size:10;not null" json:"view"`
	X             float64        `gorm:"not null" json:"x"`
	Y             float64        `gorm:"not null" json:"y"`
	Type          DamageType     `gorm:"size:20;not null" json:"type"`
	Severity      DamageSeverity `gorm:"size:10;not null" json:"severity"`
	Description   string         `gorm:"type:text" json:"description"`
	Notes         string         `gorm:"type:text" json:"notes"`
	EstimatedCost float64        `gorm:"type:decimal(10,2);default:0" json:"estimatedCost"`
	Photos        pq.StringArray `gorm:"type:text[]" json:"photos"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (DamageArea) TableName() string {
	return "work_order_damage_areas"
}

func (d *DamageArea) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// Validate enforces enum membership and coordinate sanity.
func (d *DamageArea) Validate() error {
	if !damageViews[d.View] {
		return errors.New("unknown diagram view")
	}
	if !damageTypes[d.Type] {
		return errors.New("unknown damage type")
	}
	if !damageSeverities[d.Severity] {
		return errors.New("unknown damage severity")
	}
	if d.X < 0 || d.Y < 0 {
		return errors.New("marker coordinates cannot be negative")
	}
	if d.EstimatedCost < 0 {
		return errors.New("estimated cost cannot be negative")
	}
	return nil
}
