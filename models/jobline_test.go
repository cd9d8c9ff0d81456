package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestComputeRetailPrice(t *testing.T) {
	tests := []struct {
		name     string
		cost     float64
		markup   float64
		expected float64
	}{
		{"twenty percent markup", 100, 20, 120.00},
		{"zero markup", 50, 0, 50.00},
		{"zero cost", 0, 35, 0},
		{"rounding to cents", 10.33, 15, 11.88},  // 11.8795
		{"fractional markup", 99.99, 12.5, 112.49}, // 112.48875
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRetailPrice(tt.cost, tt.markup); got != tt.expected {
				t.Errorf("ComputeRetailPrice(%v, %v) = %v, expected %v", tt.cost, tt.markup, got, tt.expected)
			}
		})
	}
}

func TestApplyPricing(t *testing.T) {
	p := WorkOrderPart{SupplierCost: 100, MarkupPercentage: 20, Quantity: 1}
	p.ApplyPricing()

	if p.RetailPrice != 120.00 {
		t.Errorf("RetailPrice = %v, expected 120.00", p.RetailPrice)
	}
	if p.CustomerPrice != 120.00 {
		t.Errorf("CustomerPrice = %v, expected 120.00", p.CustomerPrice)
	}
	if p.UnitPrice != 120.00 {
		t.Errorf("UnitPrice should default to retail, got %v", p.UnitPrice)
	}
}

func TestApplyPricingKeepsExplicitUnitPrice(t *testing.T) {
	p := WorkOrderPart{SupplierCost: 100, MarkupPercentage: 20, UnitPrice: 110}
	p.ApplyPricing()
	if p.UnitPrice != 110 {
		t.Errorf("explicit UnitPrice overwritten: %v", p.UnitPrice)
	}
}

func TestJobLineTotal(t *testing.T) {
	lineID := uuid.New()
	otherID := uuid.New()
	line := JobLine{ID: lineID, TotalAmount: 150}
	parts := []WorkOrderPart{
		{JobLineID: &lineID, CustomerPrice: 10, Quantity: 2},
		{JobLineID: &lineID, CustomerPrice: 5, Quantity: 1},
		{JobLineID: &otherID, CustomerPrice: 99, Quantity: 1}, // different line
		{JobLineID: nil, CustomerPrice: 42, Quantity: 1},      // unassigned
	}

	if got := JobLineTotal(line, parts); got != 175.00 {
		t.Errorf("JobLineTotal = %v, expected 175.00", got)
	}
}

func TestJobLineTotalLaborOnly(t *testing.T) {
	line := JobLine{ID: uuid.New(), TotalAmount: 88.5}
	if got := JobLineTotal(line, nil); got != 88.5 {
		t.Errorf("JobLineTotal with no parts = %v, expected 88.5", got)
	}
}

func TestWorkOrderTotals(t *testing.T) {
	lineA := uuid.New()
	lines := []JobLine{
		{ID: lineA, TotalAmount: 150},
		{ID: uuid.New(), TotalAmount: 50},
	}
	parts := []WorkOrderPart{
		{JobLineID: &lineA, CustomerPrice: 10, Quantity: 2},
		{JobLineID: nil, CustomerPrice: 30, Quantity: 1},
	}

	if got := WorkOrderPartsTotal(parts); got != 50.00 {
		t.Errorf("WorkOrderPartsTotal = %v, expected 50.00", got)
	}
	if got := WorkOrderGrandTotal(lines, parts); got != 250.00 {
		t.Errorf("WorkOrderGrandTotal = %v, expected 250.00", got)
	}
}

func TestUnassignedParts(t *testing.T) {
	lineID := uuid.New()
	parts := []WorkOrderPart{
		{Name: "assigned", JobLineID: &lineID},
		{Name: "loose one"},
		{Name: "loose two"},
	}
	got := UnassignedParts(parts)
	if len(got) != 2 {
		t.Fatalf("UnassignedParts returned %d parts, expected 2", len(got))
	}
	for _, p := range got {
		if p.JobLineID != nil {
			t.Errorf("part %q has a job line assignment", p.Name)
		}
	}
}

func TestJobLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		line    JobLine
		wantErr bool
	}{
		{"valid", JobLine{Name: "Brake pads", TotalAmount: 100}, false},
		{"missing name", JobLine{TotalAmount: 100}, true},
		{"negative total", JobLine{Name: "x", TotalAmount: -1}, true},
		{"negative hours", JobLine{Name: "x", EstimatedHours: -0.5}, true},
		{"negative rate", JobLine{Name: "x", LaborRate: -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPartValidate(t *testing.T) {
	tests := []struct {
		name    string
		part    WorkOrderPart
		wantErr bool
	}{
		{"valid", WorkOrderPart{Name: "Oil filter", Quantity: 1}, false},
		{"missing name", WorkOrderPart{Quantity: 1}, true},
		{"zero quantity", WorkOrderPart{Name: "x", Quantity: 0}, true},
		{"negative quantity", WorkOrderPart{Name: "x", Quantity: -2}, true},
		{"negative cost", WorkOrderPart{Name: "x", Quantity: 1, SupplierCost: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.part.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkWorkOrderGrandTotal(b *testing.B) {
	lineID := uuid.New()
	lines := make([]JobLine, 10)
	for i := range lines {
		lines[i] = JobLine{ID: uuid.New(), TotalAmount: float64(i) * 25}
	}
	parts := make([]WorkOrderPart, 40)
	for i := range parts {
		parts[i] = WorkOrderPart{JobLineID: &lineID, CustomerPrice: 9.99, Quantity: 2}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WorkOrderGrandTotal(lines, parts)
	}
}
