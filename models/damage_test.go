package models

import "testing"

func TestDamageAreaValidate(t *testing.T) {
	valid := DamageArea{
		View:     ViewFront,
		Type:     DamageDent,
		Severity: SeverityModerate,
		X:        120.5,
		Y:        340.0,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid marker rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*DamageArea)
	}{
		{"unknown view", func(d *DamageArea) { d.View = "underside" }},
		{"unknown type", func(d *DamageArea) { d.Type = "melted" }},
		{"unknown severity", func(d *DamageArea) { d.Severity = "catastrophic" }},
		{"negative x", func(d *DamageArea) { d.X = -1 }},
		{"negative y", func(d *DamageArea) { d.Y = -0.5 }},
		{"negative cost", func(d *DamageArea) { d.EstimatedCost = -100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
