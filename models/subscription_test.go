package models

import (
	"sync"
	"testing"
	"time"

	"gorm.io/gorm/schema"
)

func TestSubscriptionUniquePerShopAndModule(t *testing.T) {
	// Two shops must be able to hold a subscription for the same
	// module; only the (shop_id, module) pair is unique.
	s, err := schema.Parse(&ModuleSubscription{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	var found *schema.Index
	for _, idx := range s.ParseIndexes() {
		if idx.Name == "idx_shop_module" {
			found = idx
			break
		}
	}
	if found == nil {
		t.Fatal("idx_shop_module not defined on ModuleSubscription")
	}
	if found.Class != "UNIQUE" {
		t.Errorf("idx_shop_module class = %q, expected UNIQUE", found.Class)
	}

	var cols []string
	for _, f := range found.Fields {
		cols = append(cols, f.DBName)
	}
	if len(cols) != 2 || cols[0] != "shop_id" || cols[1] != "module" {
		t.Errorf("idx_shop_module columns = %v, expected [shop_id module]", cols)
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		sub      ModuleSubscription
		expected SubscriptionStatus
	}{
		{"live trial", ModuleSubscription{Status: SubTrial, TrialEndsAt: &future}, SubTrial},
		{"expired trial reads past_due", ModuleSubscription{Status: SubTrial, TrialEndsAt: &past}, SubPastDue},
		{"trial with no end date", ModuleSubscription{Status: SubTrial}, SubTrial},
		{"active in period", ModuleSubscription{Status: SubActive, CurrentPeriodEnd: &future}, SubActive},
		{"active past period reads past_due", ModuleSubscription{Status: SubActive, CurrentPeriodEnd: &past}, SubPastDue},
		{"cancelled stays cancelled", ModuleSubscription{Status: SubCancelled, TrialEndsAt: &past}, SubCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.EffectiveStatus(now); got != tt.expected {
				t.Errorf("EffectiveStatus() = %s, expected %s", got, tt.expected)
			}
		})
	}
}
