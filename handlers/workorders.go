package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// createWorkOrderReq is the create payload: the work order view plus
// optional child rows inserted in the same transaction.
type createWorkOrderReq struct {
	models.WorkOrderView
	TimeEntries    []models.WorkOrderTimeEntry `json:"timeEntries,omitempty"`
	InventoryItems []models.InventoryItem      `json:"inventoryItems,omitempty"`
}

// GetAllWorkOrders lists the shop's work orders with pagination and
// status/priority filters.
func GetAllWorkOrders(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	params := models.ParseListParams(r)

	q := config.DB.Model(&models.WorkOrder{}).Where("shop_id = ?", shopID)
	if params.Status != "" {
		q = q.Where("status = ?", models.NormalizeStatus(params.Status))
	}
	if params.Priority != "" {
		q = q.Where("priority = ?", params.Priority)
	}
	if params.Search != "" {
		q = q.Where("code ILIKE ? OR description ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var orders []models.WorkOrder
	err := q.Preload("Customer").Preload("Technician").Preload("Vehicle").Preload("TimeEntries").
		Preload("JobLines").Preload("Parts").
		Order(params.Order(map[string]bool{"created_at": true, "code": true, "status": true, "priority": true})).
		Limit(params.Limit).Offset(params.Offset()).
		Find(&orders).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]models.WorkOrderView, len(orders))
	for i := range orders {
		views[i] = models.MapRowToView(&orders[i])
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ListResponse{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Data:  views,
	})
}

// CreateWorkOrder inserts the parent row and any attached time entries
// and inventory items in a single transaction: either the whole work
// order lands or none of it does.
func CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	var req createWorkOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	row := models.MapViewToRow(req.WorkOrderView)
	row.ID = uuid.Nil // server-assigned
	row.Code = ""     // generated in BeforeCreate
	row.ShopID = shopID
	row.Version = 1

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for i := range req.TimeEntries {
			req.TimeEntries[i].ID = uuid.Nil
			req.TimeEntries[i].WorkOrderID = row.ID
		}
		if len(req.TimeEntries) > 0 {
			if err := tx.Create(&req.TimeEntries).Error; err != nil {
				return err
			}
		}
		for i := range req.InventoryItems {
			req.InventoryItems[i].ID = uuid.Nil
			req.InventoryItems[i].WorkOrderID = row.ID
		}
		if len(req.InventoryItems) > 0 {
			if err := tx.Create(&req.InventoryItems).Error; err != nil {
				return err
			}
		}
		return recordActivity(tx, row.ID, middleware.GetUserID(r), "created", "work order "+row.Code+" created")
	})
	if err != nil {
		log.Printf("[WORKORDER] create failed: %v", err)
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	loadWorkOrderView(w, row.ID, shopID, http.StatusCreated)
}

// GetWorkOrder returns one work order with its full composition.
func GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	var row models.WorkOrder
	err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).
		Preload("Customer").Preload("Technician").Preload("Vehicle").
		Preload("JobLines", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, created_at ASC") }).
		Preload("JobLines.Parts").Preload("Parts").Preload("TimeEntries").Preload("Inventory").
		First(&row).Error
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	view := models.MapRowToView(&row)
	resp := map[string]interface{}{
		"workOrder":       view,
		"jobLines":        row.JobLines,
		"parts":           row.Parts,
		"unassignedParts": models.UnassignedParts(row.Parts),
		"timeEntries":     row.TimeEntries,
		"inventoryItems":  row.Inventory,
		"nextStatuses":    models.NextStatusOptions(view.Status),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UpdateWorkOrder applies field edits with an optimistic concurrency
// check: the caller must send the version it read, and a stale version
// is rejected with 409.
func UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	var view models.WorkOrderView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	var existing models.WorkOrder
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	incoming := models.MapViewToRow(view)
	updates := map[string]interface{}{
		"customer_id":   incoming.CustomerID,
		"vehicle_id":    incoming.VehicleID,
		"technician_id": incoming.TechnicianID,
		"priority":      incoming.Priority,
		"description":   incoming.Description,
		"notes":         incoming.Notes,
		"start_time":    incoming.StartTime,
		"end_time":      incoming.EndTime,
		"version":       existing.Version + 1,
	}

	res := config.DB.Model(&models.WorkOrder{}).
		Where("id = ? AND shop_id = ? AND version = ?", id, shopID, view.Version).
		Updates(updates)
	if res.Error != nil {
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "work order was modified by another session", http.StatusConflict)
		return
	}

	loadWorkOrderView(w, existing.ID, shopID, http.StatusOK)
}

type statusTransitionReq struct {
	Status  models.WorkOrderStatus `json:"status"`
	Version int                    `json:"version"`
}

// TransitionWorkOrderStatus moves a work order through the state
// machine, stamping start/end timestamps and recording the activity.
func TransitionWorkOrderStatus(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	var req statusTransitionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var row models.WorkOrder
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&row).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	// A row can still hold a legacy status value; fold it onto the
	// registry so the transition matrix sees the same status the client
	// was advertised in nextStatuses.
	row.Status = models.NormalizeStatus(string(row.Status))
	previous := row.Status
	if err := models.ApplyStatusTransition(&row, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WorkOrder{}).
			Where("id = ? AND version = ?", row.ID, req.Version).
			Updates(map[string]interface{}{
				"status":     row.Status,
				"start_time": row.StartTime,
				"end_time":   row.EndTime,
				"version":    req.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleVersion
		}
		detail := fmt.Sprintf("status %s -> %s", previous, row.Status)
		return recordActivity(tx, row.ID, middleware.GetUserID(r), "status_changed", detail)
	})
	if errors.Is(err, errStaleVersion) {
		http.Error(w, "work order was modified by another session", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	loadWorkOrderView(w, row.ID, shopID, http.StatusOK)
}

// DeleteWorkOrder soft-deletes a work order and records the activity.
func DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.WorkOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		woID, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		return recordActivity(tx, woID, middleware.GetUserID(r), "deleted", "work order deleted")
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWorkOrderTotals returns the three derived totals for one work
// order. Totals are computed on read, never stored.
func GetWorkOrderTotals(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	var row models.WorkOrder
	err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).
		Preload("JobLines").Preload("Parts").
		First(&row).Error
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	lineTotals := make(map[string]float64, len(row.JobLines))
	for _, line := range row.JobLines {
		lineTotals[line.ID.String()] = models.JobLineTotal(line, row.Parts)
	}

	resp := map[string]interface{}{
		"jobLineTotals": lineTotals,
		"partsTotal":    models.WorkOrderPartsTotal(row.Parts),
		"grandTotal":    models.WorkOrderGrandTotal(row.JobLines, row.Parts),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetWorkOrderActivities lists the audit trail for one work order.
func GetWorkOrderActivities(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["id"]

	var row models.WorkOrder
	if err := config.DB.Select("id").Where("id = ? AND shop_id = ?", id, shopID).First(&row).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var activities []models.WorkOrderActivity
	if err := config.DB.Where("work_order_id = ?", id).Order("created_at DESC").Find(&activities).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

var errStaleVersion = errors.New("stale version")

func recordActivity(tx *gorm.DB, workOrderID uuid.UUID, userID, action, detail string) error {
	activity := models.WorkOrderActivity{
		WorkOrderID: workOrderID,
		Action:      action,
		Detail:      detail,
	}
	if uid, err := uuid.Parse(userID); err == nil {
		activity.UserID = &uid
	}
	return tx.Create(&activity).Error
}

// loadWorkOrderView re-reads a row with its joins and writes the view.
// JobLines and Parts ride along so the derived totalCost is computed
// from the real composition, not an empty one.
func loadWorkOrderView(w http.ResponseWriter, id, shopID uuid.UUID, status int) {
	var row models.WorkOrder
	err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).
		Preload("Customer").Preload("Technician").Preload("Vehicle").Preload("TimeEntries").
		Preload("JobLines").Preload("Parts").
		First(&row).Error
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.MapRowToView(&row))
}
