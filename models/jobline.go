package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobLineStatus tracks a single labor line item.
type JobLineStatus string

const (
	JobLinePending    JobLineStatus = "pending"
	JobLineInProgress JobLineStatus = "in-progress"
	JobLineCompleted  JobLineStatus = "completed"
	JobLineOnHold     JobLineStatus = "on-hold"
)

// PartStatus tracks procurement/installation state of a part.
type PartStatus string

const (
	PartPending   PartStatus = "pending"
	PartOrdered   PartStatus = "ordered"
	PartReceived  PartStatus = "received"
	PartInstalled PartStatus = "installed"
	PartReturned  PartStatus = "returned"
)

// JobLine is one labor line item on a work order.
//
// TotalAmount is an independently editable labor subtotal. It is NOT
// derived from EstimatedHours * LaborRate: service writers quote flat
// amounts that deliberately diverge from book hours.
type JobLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"workOrderId"`
	ShopID      uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`

	Name           string        `gorm:"size:255;not null" json:"name"`
	Category       string        `gorm:"size:100" json:"category"`
	Subcategory    string        `gorm:"size:100" json:"subcategory"`
	EstimatedHours float64       `gorm:"default:0" json:"estimatedHours"`
	LaborRate      float64       `gorm:"type:decimal(10,2);default:0" json:"laborRate"`
	TotalAmount    float64       `gorm:"type:decimal(10,2);default:0" json:"totalAmount"`
	Status         JobLineStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Notes          string        `gorm:"type:text" json:"notes"`
	DisplayOrder   int           `gorm:"default:0" json:"displayOrder"`

	Parts []WorkOrderPart `gorm:"foreignKey:JobLineID" json:"parts,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (JobLine) TableName() string {
	return "work_order_job_lines"
}

func (j *JobLine) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// Validate enforces the input-level invariants on a job line.
func (j *JobLine) Validate() error {
	if j.Name == "" {
		return errors.New("job line name is required")
	}
	if j.EstimatedHours < 0 || j.LaborRate < 0 || j.TotalAmount < 0 {
		return errors.New("job line amounts cannot be negative")
	}
	return nil
}

// WorkOrderPart is a material consumed by a work order. JobLineID is
// nullable: parts not yet assigned to a job line sit in the implicit
// unassigned bucket and are billed at the work order level.
type WorkOrderPart struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID uuid.UUID  `gorm:"type:uuid;index;not null" json:"workOrderId"`
	JobLineID   *uuid.UUID `gorm:"type:uuid;index" json:"jobLineId,omitempty"`
	ShopID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"shopId"`

	Name             string     `gorm:"size:255;not null" json:"name"`
	PartNumber       string     `gorm:"size:100" json:"partNumber"`
	Quantity         float64    `gorm:"not null;default:1" json:"quantity"`
	SupplierCost     float64    `gorm:"type:decimal(10,2);default:0" json:"supplierCost"`
	MarkupPercentage float64    `gorm:"type:decimal(6,2);default:0" json:"markupPercentage"`
	RetailPrice      float64    `gorm:"type:decimal(10,2);default:0" json:"retailPrice"`
	UnitPrice        float64    `gorm:"type:decimal(10,2);default:0" json:"unitPrice"`
	CustomerPrice    float64    `gorm:"type:decimal(10,2);default:0" json:"customerPrice"`
	Status           PartStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Taxable          bool       `gorm:"default:true" json:"taxable"`
	CoreCharge       float64    `gorm:"type:decimal(10,2);default:0" json:"coreCharge"`
	CoreChargeApplied bool      `gorm:"default:false" json:"coreChargeApplied"`
	Warehouse        string     `gorm:"size:100" json:"warehouse"`
	Bin              string     `gorm:"size:50" json:"bin"`
	Shelf            string     `gorm:"size:50" json:"shelf"`
	Supplier         string     `gorm:"size:255" json:"supplier"`
	InvoiceNumber    string     `gorm:"size:100" json:"invoiceNumber"`
	Notes            string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkOrderPart) TableName() string {
	return "work_order_parts"
}

func (p *WorkOrderPart) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// Validate enforces the input-level invariants on a part.
func (p *WorkOrderPart) Validate() error {
	if p.Name == "" {
		return errors.New("part name is required")
	}
	if p.Quantity <= 0 {
		return errors.New("part quantity must be greater than zero")
	}
	if p.SupplierCost < 0 || p.MarkupPercentage < 0 {
		return errors.New("part cost and markup cannot be negative")
	}
	return nil
}

// Round2 rounds to two decimal places, the money precision used on
// every derived price in this package.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeRetailPrice derives the customer-facing price from supplier
// cost and markup: retail = cost * (1 + markup/100), rounded to cents.
func ComputeRetailPrice(supplierCost, markupPercentage float64) float64 {
	return Round2(supplierCost * (1 + markupPercentage/100))
}

// ApplyPricing recomputes RetailPrice and CustomerPrice from
// SupplierCost and MarkupPercentage. Run on every edit of that pair.
func (p *WorkOrderPart) ApplyPricing() {
	p.RetailPrice = ComputeRetailPrice(p.SupplierCost, p.MarkupPercentage)
	p.CustomerPrice = p.RetailPrice
	if p.UnitPrice == 0 {
		p.UnitPrice = p.RetailPrice
	}
}

// LineTotal is what the customer pays for this part row.
func (p *WorkOrderPart) LineTotal() float64 {
	return Round2(p.CustomerPrice * p.Quantity)
}

// JobLineTotal is the labor subtotal plus the parts assigned to the
// line. Totals are always derived by summation, never stored.
func JobLineTotal(line JobLine, parts []WorkOrderPart) float64 {
	total := line.TotalAmount
	for _, p := range parts {
		if p.JobLineID != nil && *p.JobLineID == line.ID {
			total += p.CustomerPrice * p.Quantity
		}
	}
	return Round2(total)
}

// WorkOrderPartsTotal sums every part on the work order, assigned or not.
func WorkOrderPartsTotal(parts []WorkOrderPart) float64 {
	var total float64
	for _, p := range parts {
		total += p.CustomerPrice * p.Quantity
	}
	return Round2(total)
}

// WorkOrderGrandTotal is labor across all job lines plus all parts.
func WorkOrderGrandTotal(lines []JobLine, parts []WorkOrderPart) float64 {
	var labor float64
	for _, l := range lines {
		labor += l.TotalAmount
	}
	return Round2(labor + WorkOrderPartsTotal(parts))
}

// UnassignedParts filters the parts that belong to no job line.
func UnassignedParts(parts []WorkOrderPart) []WorkOrderPart {
	out := make([]WorkOrderPart, 0, len(parts))
	for _, p := range parts {
		if p.JobLineID == nil {
			out = append(out, p)
		}
	}
	return out
}
