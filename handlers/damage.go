package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
	"fixbay.io/fixbay/pkg/history"
)

// damageSessions keeps one undo/redo log per work order. Logs live for
// the lifetime of the process: annotation sessions are short and the
// snapshots are small (a handful of markers).
var damageSessions = struct {
	sync.Mutex
	logs map[uuid.UUID]*history.Log[models.DamageArea]
}{logs: make(map[uuid.UUID]*history.Log[models.DamageArea])}

func damageLog(workOrderID uuid.UUID) *history.Log[models.DamageArea] {
	damageSessions.Lock()
	defer damageSessions.Unlock()
	l, ok := damageSessions.logs[workOrderID]
	if !ok {
		l = history.NewLog[models.DamageArea]()
		damageSessions.logs[workOrderID] = l
	}
	return l
}

func loadDamages(workOrderID uuid.UUID) ([]models.DamageArea, error) {
	var damages []models.DamageArea
	err := config.DB.Where("work_order_id = ?", workOrderID).
		Order("created_at ASC").Find(&damages).Error
	return damages, err
}

// GetDamageAreas lists the markers for a work order, optionally
// filtered by diagram view.
func GetDamageAreas(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	q := config.DB.Where("work_order_id = ?", workOrderID)
	if view := r.URL.Query().Get("view"); view != "" {
		q = q.Where("view = ?", view)
	}
	var damages []models.DamageArea
	if err := q.Order("created_at ASC").Find(&damages).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	l := damageLog(woID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"damages": damages,
		"canUndo": l.CanUndo(),
		"canRedo": l.CanRedo(),
	})
}

// CreateDamageArea appends a marker (diagram click confirmed in the
// type/severity picker) and records the mutation for undo.
func CreateDamageArea(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	var d models.DamageArea
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	d.ID = uuid.Nil
	d.WorkOrderID = woID
	d.ShopID = shopID
	if err := d.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	before, err := loadDamages(woID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Create(&d).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	after, err := loadDamages(woID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	damageLog(woID).Record("add", before, after)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// UpdateDamageArea edits a marker via the edit dialog.
func UpdateDamageArea(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["damageId"]

	var existing models.DamageArea
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "damage area not found", http.StatusNotFound)
		return
	}

	var in models.DamageArea
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	in.ID = existing.ID
	in.WorkOrderID = existing.WorkOrderID
	in.ShopID = existing.ShopID
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	before, err := loadDamages(existing.WorkOrderID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"view":           in.View,
		"x":              in.X,
		"y":              in.Y,
		"type":           in.Type,
		"severity":       in.Severity,
		"description":    in.Description,
		"notes":          in.Notes,
		"estimated_cost": in.EstimatedCost,
		"photos":         in.Photos,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	after, err := loadDamages(existing.WorkOrderID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	damageLog(existing.WorkOrderID).Record("update", before, after)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// DeleteDamageArea removes one marker.
func DeleteDamageArea(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["damageId"]

	var existing models.DamageArea
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "damage area not found", http.StatusNotFound)
		return
	}

	before, err := loadDamages(existing.WorkOrderID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Delete(&existing).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	after, err := loadDamages(existing.WorkOrderID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	damageLog(existing.WorkOrderID).Record("delete", before, after)
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteReq struct {
	IDs []uuid.UUID `json:"ids"`
}

// BulkDeleteDamageAreas removes a selected set of markers as one
// history entry, so a single undo restores the whole selection.
func BulkDeleteDamageAreas(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	var req bulkDeleteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no ids given", http.StatusBadRequest)
		return
	}

	before, err := loadDamages(woID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Where("work_order_id = ? AND id IN ?", woID, req.IDs).
		Delete(&models.DamageArea{}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	after, err := loadDamages(woID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	damageLog(woID).Record("bulk_delete", before, after)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"deleted": len(req.IDs), "damages": after})
}

// UndoDamageAction restores the previous snapshot from the undo log.
func UndoDamageAction(w http.ResponseWriter, r *http.Request) {
	restoreDamageSnapshot(w, r, func(l *history.Log[models.DamageArea]) ([]models.DamageArea, bool) {
		return l.Undo()
	}, "nothing to undo")
}

// RedoDamageAction re-applies the next snapshot from the undo log.
func RedoDamageAction(w http.ResponseWriter, r *http.Request) {
	restoreDamageSnapshot(w, r, func(l *history.Log[models.DamageArea]) ([]models.DamageArea, bool) {
		return l.Redo()
	}, "nothing to redo")
}

func restoreDamageSnapshot(w http.ResponseWriter, r *http.Request,
	step func(*history.Log[models.DamageArea]) ([]models.DamageArea, bool), emptyMsg string) {

	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	l := damageLog(woID)
	snapshot, ok := step(l)
	if !ok {
		http.Error(w, emptyMsg, http.StatusConflict)
		return
	}

	// Replace the persisted set with the snapshot atomically.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", woID).Delete(&models.DamageArea{}).Error; err != nil {
			return err
		}
		if len(snapshot) == 0 {
			return nil
		}
		rows := make([]models.DamageArea, len(snapshot))
		copy(rows, snapshot)
		return tx.Create(&rows).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"damages": snapshot,
		"canUndo": l.CanUndo(),
		"canRedo": l.CanRedo(),
	})
}
