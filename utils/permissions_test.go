package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "workorder:create", "workorder:create", true},
		{"exact match different action", "workorder:create", "workorder:read", false},
		{"exact match different resource", "workorder:create", "customer:create", false},

		// Full wildcard tests
		{"full wildcard *:*", "*:*", "workorder:create", true},
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard matches delete", "*:*", "user:delete", true},
		{"full wildcard matches export", "*:*", "catalog:export", true},

		// Action wildcard on a resource
		{"resource wildcard matches create", "workorder:*", "workorder:create", true},
		{"resource wildcard matches read", "workorder:*", "workorder:read", true},
		{"resource wildcard matches update", "workorder:*", "workorder:update", true},
		{"resource wildcard matches delete", "workorder:*", "workorder:delete", true},
		{"resource wildcard doesn't match other resource", "workorder:*", "customer:create", false},

		// Resource wildcard on an action
		{"action wildcard matches workorder", "*:read", "workorder:read", true},
		{"action wildcard matches catalog", "*:read", "catalog:read", true},
		{"action wildcard doesn't match other action", "*:read", "workorder:create", false},

		// Edge cases
		{"empty required permission", "workorder:create", "", false},
		{"empty user permission", "", "workorder:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs two-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		perms    []string
		required string
		expected bool
	}{
		{"grant via exact", []string{"workorder:read", "jobline:read"}, "jobline:read", true},
		{"grant via resource wildcard", []string{"damage:*"}, "damage:delete", true},
		{"grant via full wildcard", []string{"*:*"}, "subscription:manage", true},
		{"deny when absent", []string{"workorder:read"}, "workorder:delete", false},
		{"deny on empty set", nil, "workorder:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HasPermission(tt.perms, tt.required)
			if result != tt.expected {
				t.Errorf("HasPermission(%v, %q) = %v, expected %v",
					tt.perms, tt.required, result, tt.expected)
			}
		})
	}
}

func BenchmarkMatchesPermission(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("workorder:*", "workorder:create")
	}
}

func BenchmarkHasPermission(b *testing.B) {
	perms := []string{"workorder:*", "jobline:*", "part:*", "damage:*", "catalog:read"}
	for i := 0; i < b.N; i++ {
		HasPermission(perms, "catalog:read")
	}
}
