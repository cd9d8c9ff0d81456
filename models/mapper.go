package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorkOrderView is the API-facing shape of a work order: camelCase,
// with the customer/technician joins flattened into display strings and
// derived totals attached. It is produced by MapRowToView and never
// written back verbatim; MapViewToRow drops the display-only fields.
type WorkOrderView struct {
	ID             uuid.UUID         `json:"id"`
	Code           string            `json:"code"`
	ShopID         uuid.UUID         `json:"shopId"`
	CustomerID     *uuid.UUID        `json:"customerId,omitempty"`
	CustomerName   string            `json:"customerName"`
	VehicleID      *uuid.UUID        `json:"vehicleId,omitempty"`
	VehicleLabel   string            `json:"vehicleLabel,omitempty"`
	TechnicianID   *uuid.UUID        `json:"technicianId,omitempty"`
	TechnicianName string            `json:"technicianName"`
	Status         WorkOrderStatus   `json:"status"`
	StatusLabel    string            `json:"statusLabel"`
	Priority       WorkOrderPriority `json:"priority"`
	Description    string            `json:"description"`
	Notes          string            `json:"notes"`
	StartTime      *time.Time        `json:"startTime,omitempty"`
	EndTime        *time.Time        `json:"endTime,omitempty"`
	DueDate        *time.Time        `json:"dueDate,omitempty"`
	Version        int               `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	TotalBillableTime float64 `json:"totalBillableTime"`
	TotalCost         float64 `json:"totalCost"`
}

// DisplayName joins first and last name, trimming when either half is
// missing. Empty input yields fallback.
func DisplayName(first, last, fallback string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return fallback
	}
	return name
}

// TotalBillableTime sums the durations of billable time entries.
func TotalBillableTime(entries []WorkOrderTimeEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Billable {
			total += e.Duration
		}
	}
	return total
}

// MapRowToView translates a storage row (with whatever associations are
// preloaded) into the view model. Unknown statuses fall back to
// pending; absent joins fall back to "Unknown Customer"/"Unassigned".
func MapRowToView(row *WorkOrder) WorkOrderView {
	status := NormalizeStatus(string(row.Status))
	v := WorkOrderView{
		ID:             row.ID,
		Code:           row.Code,
		ShopID:         row.ShopID,
		CustomerID:     row.CustomerID,
		CustomerName:   "Unknown Customer",
		VehicleID:      row.VehicleID,
		TechnicianID:   row.TechnicianID,
		TechnicianName: "Unassigned",
		Status:         status,
		StatusLabel:    statusRegistry[status].Label,
		Priority:       NormalizePriority(string(row.Priority)),
		Description:    row.Description,
		Notes:          row.Notes,
		StartTime:      row.StartTime,
		EndTime:        row.EndTime,
		DueDate:        row.EndTime,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Customer != nil {
		v.CustomerName = DisplayName(row.Customer.FirstName, row.Customer.LastName, "Unknown Customer")
	}
	if row.Technician != nil {
		v.TechnicianName = DisplayName(row.Technician.FirstName, row.Technician.LastName, "Unassigned")
	}
	if row.Vehicle != nil {
		year := ""
		if row.Vehicle.Year > 0 {
			year = strconv.Itoa(row.Vehicle.Year)
		}
		v.VehicleLabel = strings.TrimSpace(strings.Join([]string{year, row.Vehicle.Make, row.Vehicle.Model}, " "))
	}
	if len(row.TimeEntries) > 0 {
		v.TotalBillableTime = TotalBillableTime(row.TimeEntries)
	}
	if len(row.JobLines) > 0 || len(row.Parts) > 0 {
		v.TotalCost = WorkOrderGrandTotal(row.JobLines, row.Parts)
	}
	return v
}

// MapViewToRow translates a view model back into the columns the
// mapper owns. Display-only fields (names, labels, derived totals) are
// dropped. Both dueDate and endTime land on the end_time column; when
// the caller supplies both, endTime wins.
func MapViewToRow(v WorkOrderView) WorkOrder {
	row := WorkOrder{
		ID:           v.ID,
		Code:         v.Code,
		ShopID:       v.ShopID,
		CustomerID:   v.CustomerID,
		VehicleID:    v.VehicleID,
		TechnicianID: v.TechnicianID,
		Status:       NormalizeStatus(string(v.Status)),
		Priority:     NormalizePriority(string(v.Priority)),
		Description:  v.Description,
		Notes:        v.Notes,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Version:      v.Version,
	}
	if row.EndTime == nil && v.DueDate != nil {
		row.EndTime = v.DueDate
	}
	return row
}
