package models

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateWorkOrderCode(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	code := GenerateWorkOrderCode(now)

	if !strings.HasPrefix(code, "WO-260830-") {
		t.Fatalf("code %q missing WO-YYMMDD- prefix", code)
	}
	suffix := strings.TrimPrefix(code, "WO-260830-")
	if len(suffix) != 4 {
		t.Fatalf("suffix %q should be 4 characters", suffix)
	}
	for _, c := range suffix {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("suffix character %q outside base36 alphabet", c)
		}
	}
}

func TestGenerateWorkOrderCodeVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateWorkOrderCode(now)] = true
	}
	// 50 draws from 36^4 combinations colliding down to a handful would
	// mean the suffix is not random at all.
	if len(seen) < 45 {
		t.Errorf("expected ~50 distinct codes, got %d", len(seen))
	}
}
