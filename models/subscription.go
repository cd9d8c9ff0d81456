package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionStatus is the stored billing state of one module for one
// shop. EffectiveStatus folds trial expiry in at read time.
type SubscriptionStatus string

const (
	SubTrial     SubscriptionStatus = "trial"
	SubActive    SubscriptionStatus = "active"
	SubPastDue   SubscriptionStatus = "past_due"
	SubCancelled SubscriptionStatus = "cancelled"
)

// Module names a billable feature area.
const (
	ModuleWorkOrders = "work_orders"
	ModuleDamage     = "damage_annotation"
	ModuleCatalog    = "service_catalog"
	ModuleAnalytics  = "analytics"
)

// ModuleSubscription tracks a shop's access to one module, including
// trial administration from the back office.
type ModuleSubscription struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID           uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_shop_module,priority:1" json:"shopId"`
	Module           string             `gorm:"size:50;not null;uniqueIndex:idx_shop_module,priority:2" json:"module"`
	Status           SubscriptionStatus `gorm:"size:20;not null;default:trial" json:"status"`
	TrialEndsAt      *time.Time         `json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd *time.Time         `json:"currentPeriodEnd,omitempty"`
	CancelledAt      *time.Time         `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ModuleSubscription) TableName() string {
	return "module_subscriptions"
}

func (m *ModuleSubscription) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// EffectiveStatus resolves what the shop is entitled to right now: a
// trial past its end date reads as past_due without a write.
func (m *ModuleSubscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if m.Status == SubTrial && m.TrialEndsAt != nil && now.After(*m.TrialEndsAt) {
		return SubPastDue
	}
	if m.Status == SubActive && m.CurrentPeriodEnd != nil && now.After(*m.CurrentPeriodEnd) {
		return SubPastDue
	}
	return m.Status
}

// WebhookLog records one outbound webhook delivery attempt for the
// back-office audit view.
type WebhookLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID         uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`
	Endpoint       string    `gorm:"size:500;not null" json:"endpoint"`
	Event          string    `gorm:"size:100;not null" json:"event"`
	Payload        string    `gorm:"type:jsonb" json:"payload"`
	ResponseStatus int       `json:"responseStatus"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}

func (w *WebhookLog) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
