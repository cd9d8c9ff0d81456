package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// GetJobLines lists a work order's job lines with their parts, plus
// the unassigned parts bucket.
func GetJobLines(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	if _, ok := requireWorkOrder(w, workOrderID, shopID); !ok {
		return
	}

	var lines []models.JobLine
	err := config.DB.Where("work_order_id = ?", workOrderID).
		Preload("Parts").
		Order("display_order ASC, created_at ASC").
		Find(&lines).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var unassigned []models.WorkOrderPart
	if err := config.DB.Where("work_order_id = ? AND job_line_id IS NULL", workOrderID).
		Find(&unassigned).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobLines":        lines,
		"unassignedParts": unassigned,
	})
}

// CreateJobLine adds a labor line to a work order.
func CreateJobLine(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	var line models.JobLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	line.ID = uuid.Nil
	line.WorkOrderID = woID
	line.ShopID = shopID
	if line.Status == "" {
		line.Status = models.JobLinePending
	}
	if err := line.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&line).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(line)
}

// UpdateJobLine edits a job line's fields. TotalAmount is written as
// sent: it is an override, not derived from hours and rate.
func UpdateJobLine(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["lineId"]

	var existing models.JobLine
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "job line not found", http.StatusNotFound)
		return
	}

	var in models.JobLine
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

	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"name":            in.Name,
		"category":        in.Category,
		"subcategory":     in.Subcategory,
		"estimated_hours": in.EstimatedHours,
		"labor_rate":      in.LaborRate,
		"total_amount":    in.TotalAmount,
		"status":          in.Status,
		"notes":           in.Notes,
		"display_order":   in.DisplayOrder,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// DeleteJobLine removes a job line. Its parts move to the unassigned
// bucket rather than being deleted with it.
func DeleteJobLine(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["lineId"]

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WorkOrderPart{}).
			Where("job_line_id = ?", id).
			Update("job_line_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.JobLine{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "job line not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
