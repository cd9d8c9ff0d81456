package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
	"fixbay.io/fixbay/utils"
)

type statusCount struct {
	Status models.WorkOrderStatus `json:"status"`
	Count  int64                  `json:"count"`
}

type monthlyRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// GetShopAnalytics returns the back-office dashboard numbers for one
// shop: status distribution, revenue KPI against the previous 30 days,
// monthly revenue series, and completion-time statistics.
func GetShopAnalytics(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	now := time.Now()

	// Status distribution over live (not soft-deleted) work orders.
	var distribution []statusCount
	err := config.DB.Model(&models.WorkOrder{}).
		Select("status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("status").
		Scan(&distribution).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	currentRevenue, err := revenueBetween(shopID, now.AddDate(0, 0, -30), now)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	previousRevenue, err := revenueBetween(shopID, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	monthly, err := monthlyRevenueSeries(shopID, now.AddDate(0, -12, 0))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Completion time in hours for orders that ran start to finish.
	var hours []float64
	err = config.DB.Model(&models.WorkOrder{}).
		Where("shop_id = ? AND status = ? AND start_time IS NOT NULL AND end_time IS NOT NULL", shopID, models.StatusCompleted).
		Pluck("EXTRACT(EPOCH FROM (end_time - start_time)) / 3600", &hours).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"statusDistribution": distribution,
		"revenue":            utils.ComputeKPI(currentRevenue, previousRevenue),
		"monthlyRevenue":     monthly,
		"completionHours":    utils.Summarize(hours),
	})
}

// revenueBetween sums the grand totals (labor lines plus parts) of
// work orders completed in the window. Totals are derived, never read
// from a stored column.
func revenueBetween(shopID interface{}, from, to time.Time) (float64, error) {
	var labor, parts float64
	err := config.DB.Raw(`
		SELECT COALESCE(SUM(jl.total_amount), 0)
		FROM work_order_job_lines jl
		JOIN work_orders wo ON wo.id = jl.work_order_id
		WHERE wo.shop_id = ? AND wo.status = ? AND wo.end_time >= ? AND wo.end_time < ?
		  AND wo.deleted_at IS NULL AND jl.deleted_at IS NULL`,
		shopID, models.StatusCompleted, from, to).Scan(&labor).Error
	if err != nil {
		return 0, err
	}
	err = config.DB.Raw(`
		SELECT COALESCE(SUM(p.customer_price * p.quantity), 0)
		FROM work_order_parts p
		JOIN work_orders wo ON wo.id = p.work_order_id
		WHERE wo.shop_id = ? AND wo.status = ? AND wo.end_time >= ? AND wo.end_time < ?
		  AND wo.deleted_at IS NULL AND p.deleted_at IS NULL`,
		shopID, models.StatusCompleted, from, to).Scan(&parts).Error
	return labor + parts, err
}

func monthlyRevenueSeries(shopID interface{}, since time.Time) ([]monthlyRevenue, error) {
	var monthly []monthlyRevenue
	err := config.DB.Raw(`
		SELECT to_char(wo.end_time, 'YYYY-MM') AS month,
		       COALESCE(SUM(t.amount), 0)      AS revenue,
		       COUNT(DISTINCT wo.id)           AS orders
		FROM work_orders wo
		LEFT JOIN (
			SELECT work_order_id, SUM(total_amount) AS amount
			FROM work_order_job_lines WHERE deleted_at IS NULL GROUP BY work_order_id
			UNION ALL
			SELECT work_order_id, SUM(customer_price * quantity) AS amount
			FROM work_order_parts WHERE deleted_at IS NULL GROUP BY work_order_id
		) t ON t.work_order_id = wo.id
		WHERE wo.shop_id = ? AND wo.status = ? AND wo.end_time >= ?
		  AND wo.deleted_at IS NULL
		GROUP BY month
		ORDER BY month ASC`,
		shopID, models.StatusCompleted, since).Scan(&monthly).Error
	return monthly, err
}

// GetPlatformAnalytics aggregates across shops for the super admin:
// shop counts, user counts, per-module subscription states.
func GetPlatformAnalytics(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil || claims.Role != models.RoleSuperAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var shopCount, userCount int64
	if err := config.DB.Model(&models.Shop{}).Count(&shopCount).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := config.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&userCount).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	type moduleStat struct {
		Module string `json:"module"`
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var modules []moduleStat
	err := config.DB.Model(&models.ModuleSubscription{}).
		Select("module, status, COUNT(*) AS count").
		Group("module, status").
		Order("module ASC, status ASC").
		Scan(&modules).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var workOrderCount int64
	if err := config.DB.Model(&models.WorkOrder{}).Count(&workOrderCount).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"shops":         shopCount,
		"activeUsers":   userCount,
		"workOrders":    workOrderCount,
		"subscriptions": modules,
	})
}
