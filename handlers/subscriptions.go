package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

type subscriptionView struct {
	models.ModuleSubscription
	EffectiveStatus models.SubscriptionStatus `json:"effectiveStatus"`
}

// GetSubscriptions lists the shop's module subscriptions with their
// effective (trial-expiry-aware) status.
func GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var subs []models.ModuleSubscription
	if err := config.DB.Where("shop_id = ?", shopID).Order("module ASC").Find(&subs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	now := time.Now()
	out := make([]subscriptionView, len(subs))
	for i, s := range subs {
		out[i] = subscriptionView{ModuleSubscription: s, EffectiveStatus: s.EffectiveStatus(now)}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

var validModules = map[string]bool{
	models.ModuleWorkOrders: true,
	models.ModuleDamage:     true,
	models.ModuleCatalog:    true,
	models.ModuleAnalytics:  true,
}

type startTrialReq struct {
	Module string `json:"module"`
	Days   int    `json:"days"`
}

// StartTrial opens (or reopens) a trial for a module. Default length
// is 30 days.
func StartTrial(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	var req startTrialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !validModules[req.Module] {
		http.Error(w, "unknown module", http.StatusBadRequest)
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}
	ends := time.Now().AddDate(0, 0, req.Days)

	var sub models.ModuleSubscription
	err := config.DB.Where("shop_id = ? AND module = ?", shopID, req.Module).First(&sub).Error
	if err == nil {
		if sub.Status == models.SubActive {
			http.Error(w, "module already has an active subscription", http.StatusConflict)
			return
		}
		if err := config.DB.Model(&sub).Updates(map[string]interface{}{
			"status":        models.SubTrial,
			"trial_ends_at": ends,
			"cancelled_at":  nil,
		}).Error; err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		sub = models.ModuleSubscription{
			ShopID:      shopID,
			Module:      req.Module,
			Status:      models.SubTrial,
			TrialEndsAt: &ends,
		}
		if err := config.DB.Create(&sub).Error; err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subscriptionView{ModuleSubscription: sub, EffectiveStatus: sub.EffectiveStatus(time.Now())})
}

type extendTrialReq struct {
	Days int `json:"days"`
}

// ExtendTrial pushes a trial's end date out. The extension is applied
// from the later of now and the current end, so an expired trial comes
// back to life for the given number of days.
func ExtendTrial(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["subscriptionId"]

	var sub models.ModuleSubscription
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&sub).Error; err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	if sub.Status != models.SubTrial {
		http.Error(w, "only trials can be extended", http.StatusUnprocessableEntity)
		return
	}

	var req extendTrialReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Days <= 0 {
		http.Error(w, "days must be a positive integer", http.StatusBadRequest)
		return
	}

	base := time.Now()
	if sub.TrialEndsAt != nil && sub.TrialEndsAt.After(base) {
		base = *sub.TrialEndsAt
	}
	ends := base.AddDate(0, 0, req.Days)
	if err := config.DB.Model(&sub).Update("trial_ends_at", ends).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sub.TrialEndsAt = &ends
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subscriptionView{ModuleSubscription: sub, EffectiveStatus: sub.EffectiveStatus(time.Now())})
}

// CancelSubscription cancels a module subscription or trial.
func CancelSubscription(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	id := mux.Vars(r)["subscriptionId"]

	var sub models.ModuleSubscription
	if err := config.DB.Where("id = ? AND shop_id = ?", id, shopID).First(&sub).Error; err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	if sub.Status == models.SubCancelled {
		http.Error(w, "subscription is already cancelled", http.StatusConflict)
		return
	}
	now := time.Now()
	if err := config.DB.Model(&sub).Updates(map[string]interface{}{
		"status":       models.SubCancelled,
		"cancelled_at": now,
	}).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sub.Status = models.SubCancelled
	sub.CancelledAt = &now
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subscriptionView{ModuleSubscription: sub, EffectiveStatus: sub.EffectiveStatus(now)})
}

// GetWebhookLogs lists recent outbound webhook deliveries for the
// back-office audit view.
func GetWebhookLogs(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)
	params := models.ParseListParams(r)

	q := config.DB.Model(&models.WebhookLog{}).Where("shop_id = ?", shopID)
	if event := r.URL.Query().Get("event"); event != "" {
		q = q.Where("event = ?", event)
	}
	if r.URL.Query().Get("failed") == "true" {
		q = q.Where("response_status >= 400 OR error <> ''")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var logs []models.WebhookLog
	err := q.Order("created_at DESC").
		Offset(params.Offset()).Limit(params.Limit).
		Find(&logs).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ListResponse{
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
		Data:  logs,
	})
}
