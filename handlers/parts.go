package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

// BatchCreateParts accepts one or many part rows for a work order (the
// batch-entry dialog posts N rows at once). Every row is validated and
// priced before anything is written; one bad row rejects the batch.
func BatchCreateParts(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	workOrderID := mux.Vars(r)["id"]

	woID, ok := requireWorkOrder(w, workOrderID, shopID)
	if !ok {
		return
	}

	var batch []models.WorkOrderPart
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(batch) == 0 {
		http.Error(w, "at least one part is required", http.StatusBadRequest)
		return
	}

	for i := range batch {
		batch[i].ID = uuid.Nil
		batch[i].WorkOrderID = woID
		batch[i].ShopID = shopID
		if batch[i].Status == "" {
			batch[i].Status = models.PartPending
		}
		if err := batch[i].Validate(); err != nil {
			http.Error(w, fmt.Sprintf("part %d: %s", i+1, err.Error()), http.StatusBadRequest)
			return
		}
		if batch[i].JobLineID != nil {
			belongs, err := jobLineBelongsTo(*batch[i].JobLineID, woID)
			if err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if !belongs {
				http.Error(w, fmt.Sprintf("part %d: job line does not belong to this work order", i+1), http.StatusBadRequest)
				return
			}
		}
		batch[i].ApplyPricing()
	}

	if err := config.DB.Create(&batch).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(batch)
}

// UpdatePart edits a part; supplier cost and markup changes recompute
// the derived prices.
func UpdatePart(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["partId"]

	var existing models.WorkOrderPart
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&existing).Error; err != nil {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}

	var in models.WorkOrderPart
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	in.ID = existing.ID
	in.WorkOrderID = existing.WorkOrderID
	in.JobLineID = existing.JobLineID // reassignment has its own endpoint
	in.ShopID = existing.ShopID
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in.ApplyPricing()

	if err := config.DB.Model(&existing).Updates(map[string]interface{}{
		"name":              in.Name,
		"part_number":       in.PartNumber,
		"quantity":          in.Quantity,
		"supplier_cost":     in.SupplierCost,
		"markup_percentage": in.MarkupPercentage,
		"retail_price":      in.RetailPrice,
		"unit_price":        in.UnitPrice,
		"customer_price":    in.CustomerPrice,
		"status":            in.Status,
		"taxable":           in.Taxable,
		"core_charge":       in.CoreCharge,
		"core_charge_applied": in.CoreChargeApplied,
		"warehouse":         in.Warehouse,
		"bin":               in.Bin,
		"shelf":             in.Shelf,
		"supplier":          in.Supplier,
		"invoice_number":    in.InvoiceNumber,
		"notes":             in.Notes,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

type assignPartReq struct {
	JobLineID *uuid.UUID `json:"jobLineId"` // null moves to the unassigned bucket
}

// AssignPart moves a part between job lines or to/from the unassigned
// bucket. This is a single-column update with no version check: two
// simultaneous movers race and the last write wins, which is accepted
// for drag-and-drop.
func AssignPart(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["partId"]

	var part models.WorkOrderPart
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&part).Error; err != nil {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}

	var req assignPartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.JobLineID != nil {
		belongs, err := jobLineBelongsTo(*req.JobLineID, part.WorkOrderID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !belongs {
			http.Error(w, "job line does not belong to this work order", http.StatusBadRequest)
			return
		}
	}

	if err := config.DB.Model(&part).Update("job_line_id", req.JobLineID).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	part.JobLineID = req.JobLineID
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(part)
}

// DeletePart removes a part row.
func DeletePart(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["partId"]

	res := config.DB.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.WorkOrderPart{})
	if res.Error != nil {
		http.Error(w, "db error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func workOrderExists(id string, shopID uuid.UUID) (bool, error) {
	var count int64
	err := config.DB.Model(&models.WorkOrder{}).
		Where("id = ? AND shop_id = ?", id, shopID).
		Count(&count).Error
	return count > 0, err
}

func jobLineBelongsTo(lineID, workOrderID uuid.UUID) (bool, error) {
	var count int64
	err := config.DB.Model(&models.JobLine{}).
		Where("id = ? AND work_order_id = ?", lineID, workOrderID).
		Count(&count).Error
	return count > 0, err
}

// requireWorkOrder resolves the work order path var and writes the
// appropriate error response when the order is missing or the lookup
// fails. ok is false when a response has already been written.
func requireWorkOrder(w http.ResponseWriter, id string, shopID uuid.UUID) (uuid.UUID, bool) {
	woID, err := uuid.Parse(id)
	if err != nil {
		http.Error(w, "work order not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	exists, err := workOrderExists(id, shopID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return uuid.Nil, false
	}
	if !exists {
		http.Error(w, "work order not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return woID, true
}
