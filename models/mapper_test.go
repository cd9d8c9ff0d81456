package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMapRowToViewDefaults(t *testing.T) {
	row := WorkOrder{
		ID:     uuid.New(),
		Code:   "WO-260830-ab12",
		ShopID: uuid.New(),
		Status: "awaiting-parts", // legacy value
	}
	v := MapRowToView(&row)

	if v.Status != StatusInProgress {
		t.Errorf("legacy status should normalize to in-progress, got %s", v.Status)
	}
	if v.StatusLabel != "In Progress" {
		t.Errorf("StatusLabel = %q", v.StatusLabel)
	}
	if v.CustomerName != "Unknown Customer" {
		t.Errorf("CustomerName fallback = %q", v.CustomerName)
	}
	if v.TechnicianName != "Unassigned" {
		t.Errorf("TechnicianName fallback = %q", v.TechnicianName)
	}
	if v.Priority != PriorityMedium {
		t.Errorf("empty priority should normalize to medium, got %s", v.Priority)
	}
}

func TestMapRowToViewJoins(t *testing.T) {
	end := time.Now()
	row := WorkOrder{
		ID:         uuid.New(),
		Customer:   &Customer{FirstName: "Jane", LastName: "Doe"},
		Technician: &User{FirstName: "Sam"},
		Vehicle:    &Vehicle{Year: 2019, Make: "Toyota", Model: "Camry"},
		Status:     StatusCompleted,
		EndTime:    &end,
		TimeEntries: []WorkOrderTimeEntry{
			{Duration: 1.5, Billable: true},
			{Duration: 2.0, Billable: false},
			{Duration: 0.5, Billable: true},
		},
	}
	v := MapRowToView(&row)

	if v.CustomerName != "Jane Doe" {
		t.Errorf("CustomerName = %q", v.CustomerName)
	}
	if v.TechnicianName != "Sam" {
		t.Errorf("TechnicianName = %q", v.TechnicianName)
	}
	if v.VehicleLabel != "2019 Toyota Camry" {
		t.Errorf("VehicleLabel = %q", v.VehicleLabel)
	}
	if v.TotalBillableTime != 2.0 {
		t.Errorf("TotalBillableTime = %v, expected 2.0 (non-billable excluded)", v.TotalBillableTime)
	}
	if v.DueDate == nil || !v.DueDate.Equal(end) {
		t.Error("DueDate should mirror EndTime")
	}
}

func TestMapRowToViewTotalCost(t *testing.T) {
	lineID := uuid.New()
	row := WorkOrder{
		ID: uuid.New(),
		JobLines: []JobLine{
			{ID: lineID, TotalAmount: 150},
		},
		Parts: []WorkOrderPart{
			{JobLineID: &lineID, CustomerPrice: 10, Quantity: 2},
			{CustomerPrice: 5, Quantity: 1}, // unassigned, still billed
		},
	}
	v := MapRowToView(&row)

	if v.TotalCost != 175 {
		t.Errorf("TotalCost = %v, expected 175 (labor 150 + parts 25)", v.TotalCost)
	}
	if v.TotalCost != WorkOrderGrandTotal(row.JobLines, row.Parts) {
		t.Error("TotalCost must equal the derived grand total")
	}
}

func TestMapRowToViewVehicleWithoutYear(t *testing.T) {
	row := WorkOrder{Vehicle: &Vehicle{Make: "Honda", Model: "Civic"}}
	v := MapRowToView(&row)
	if v.VehicleLabel != "Honda Civic" {
		t.Errorf("VehicleLabel = %q, expected no leading year", v.VehicleLabel)
	}
}

func TestMapRoundTrip(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	end := time.Now()
	custID := uuid.New()
	vehID := uuid.New()
	techID := uuid.New()
	row := WorkOrder{
		ID:           uuid.New(),
		Code:         "WO-260830-zz99",
		ShopID:       uuid.New(),
		CustomerID:   &custID,
		VehicleID:    &vehID,
		TechnicianID: &techID,
		Status:       StatusInProgress,
		Priority:     PriorityHigh,
		Description:  "Brake check",
		Notes:        "customer waiting",
		StartTime:    &start,
		EndTime:      &end,
		Version:      3,
	}

	got := MapViewToRow(MapRowToView(&row))

	if got.ID != row.ID || got.Code != row.Code || got.ShopID != row.ShopID {
		t.Error("identity columns not preserved")
	}
	if *got.CustomerID != custID || *got.VehicleID != vehID || *got.TechnicianID != techID {
		t.Error("foreign keys not preserved")
	}
	if got.Status != row.Status || got.Priority != row.Priority {
		t.Error("status/priority not preserved")
	}
	if got.Description != row.Description || got.Notes != row.Notes {
		t.Error("text columns not preserved")
	}
	if !got.StartTime.Equal(start) || !got.EndTime.Equal(end) {
		t.Error("timestamps not preserved")
	}
	if got.Version != row.Version {
		t.Error("version not preserved")
	}
}

func TestMapViewToRowDueDatePrecedence(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	end := time.Now()

	// dueDate alone lands on end_time
	v := WorkOrderView{DueDate: &due}
	if row := MapViewToRow(v); row.EndTime == nil || !row.EndTime.Equal(due) {
		t.Error("dueDate should map onto end_time when endTime is absent")
	}

	// when both are set, endTime wins
	v = WorkOrderView{DueDate: &due, EndTime: &end}
	if row := MapViewToRow(v); !row.EndTime.Equal(end) {
		t.Error("endTime should take precedence over dueDate")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		first, last, fallback, expected string
	}{
		{"Jane", "Doe", "?", "Jane Doe"},
		{"Jane", "", "?", "Jane"},
		{"", "Doe", "?", "Doe"},
		{"", "", "Unknown Customer", "Unknown Customer"},
		{"  ", "  ", "Unassigned", "Unassigned"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.first, tt.last, tt.fallback); got != tt.expected {
			t.Errorf("DisplayName(%q, %q, %q) = %q, expected %q",
				tt.first, tt.last, tt.fallback, got, tt.expected)
		}
	}
}

func TestScenarioDefaultStatusOnCreate(t *testing.T) {
	// A view posted with no explicit status maps to a pending row.
	v := WorkOrderView{CustomerName: "Jane Doe", Description: "Brake check"}
	row := MapViewToRow(v)
	if row.Status != StatusPending {
		t.Errorf("default status = %s, expected pending", row.Status)
	}
}
