package models

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrder is the storage row for one unit of repair work. Columns are
// snake_case in Postgres; the API-facing shape lives in WorkOrderView.
type WorkOrder struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code   string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	ShopID uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	Shop   Shop      `gorm:"foreignKey:ShopID" json:"-"`

	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Customer     *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	VehicleID    *uuid.UUID `gorm:"type:uuid;index" json:"vehicleId,omitempty"`
	Vehicle      *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	TechnicianID *uuid.UUID `gorm:"type:uuid;index" json:"technicianId,omitempty"`
	Technician   *User      `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`

	Status      WorkOrderStatus   `gorm:"size:20;not null;default:pending" json:"status"`
	Priority    WorkOrderPriority `gorm:"size:10;not null;default:medium" json:"priority"`
	Description string            `gorm:"type:text" json:"description"`
	Notes       string            `gorm:"type:text" json:"notes"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// Version supports optimistic concurrency on updates. Stale writes
	// are rejected with 409 instead of last-write-wins.
	Version int `gorm:"not null;default:1" json:"version"`

	JobLines    []JobLine            `gorm:"foreignKey:WorkOrderID" json:"jobLines,omitempty"`
	Parts       []WorkOrderPart      `gorm:"foreignKey:WorkOrderID" json:"parts,omitempty"`
	TimeEntries []WorkOrderTimeEntry `gorm:"foreignKey:WorkOrderID" json:"timeEntries,omitempty"`
	Inventory   []InventoryItem      `gorm:"foreignKey:WorkOrderID" json:"inventoryItems,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

func (w *WorkOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Code == "" {
		w.Code = GenerateWorkOrderCode(time.Now())
	}
	if _, ok := statusRegistry[w.Status]; !ok {
		w.Status = NormalizeStatus(string(w.Status))
	}
	if _, ok := priorityRegistry[w.Priority]; !ok {
		w.Priority = NormalizePriority(string(w.Priority))
	}
	return
}

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateWorkOrderCode builds the human-readable code
// WO-{YYMMDD}-{4 random base36 chars}. Uniqueness is enforced by the
// column index; the insert transaction fails on the rare collision.
func GenerateWorkOrderCode(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a time-derived index.
			n = big.NewInt(now.UnixNano() >> uint(i*8))
		}
		suffix[i] = codeAlphabet[n.Int64()%int64(len(codeAlphabet))]
	}
	return "WO-" + now.Format("060102") + "-" + string(suffix)
}

// WorkOrderTimeEntry records labor time against a work order.
type WorkOrderTimeEntry struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"workOrderId"`
	TechnicianID *uuid.UUID `gorm:"type:uuid" json:"technicianId,omitempty"`
	Duration     float64    `gorm:"not null;default:0" json:"duration"` // hours
	Billable     bool       `gorm:"default:true" json:"billable"`
	Notes        string     `gorm:"type:text" json:"notes"`
	StartedAt    *JSONTime  `json:"startedAt,omitempty"`
	EndedAt      *JSONTime  `json:"endedAt,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (WorkOrderTimeEntry) TableName() string {
	return "work_order_time_entries"
}

func (e *WorkOrderTimeEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// InventoryItem is stock consumed by a work order outside the parts
// composition (shop supplies, fluids).
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"workOrderId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Sku         string    `gorm:"size:100" json:"sku"`
	Quantity    float64   `gorm:"not null;default:1" json:"quantity"`
	UnitCost    float64   `gorm:"type:decimal(10,2);default:0" json:"unitCost"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (InventoryItem) TableName() string {
	return "work_order_inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// WorkOrderActivity is the audit trail: one row per create, status
// change, or delete.
type WorkOrderActivity struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID  `gorm:"type:uuid;index;not null" json:"workOrderId"`
	UserID      *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	Action      string     `gorm:"size:50;not null" json:"action"` // created, status_changed, deleted
	Detail      string     `gorm:"type:text" json:"detail"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (WorkOrderActivity) TableName() string {
	return "work_order_activities"
}

func (a *WorkOrderActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
