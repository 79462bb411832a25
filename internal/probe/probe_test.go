package probe

import "testing"

func TestExitCodes(t *testing.T) {
	tests := []struct {
		status Status
		code   int
	}{
		{StatusOK, 0},
		{StatusWarning, 1},
		{StatusCritical, 2},
		{StatusUnknown, 3},
		{Status("garbage"), 3},
	}
	for _, tt := range tests {
		if got := tt.status.ExitCode(); got != tt.code {
			t.Errorf("ExitCode(%q) = %d, want %d", tt.status, got, tt.code)
		}
	}
}

func TestPluginLineOK(t *testing.T) {
	r := &Result{Status: StatusOK, Message: "RAW usage 45.12%"}
	if got := r.PluginLine(); got != "RAW usage 45.12%" {
		t.Errorf("OK line should carry no prefix, got %q", got)
	}
}

func TestPluginLinePrefixed(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusWarning, "WARNING: too full"},
		{StatusCritical, "CRITICAL: too full"},
		{StatusUnknown, "UNKNOWN: too full"},
	}
	for _, tt := range tests {
		r := &Result{Status: tt.status, Message: "too full"}
		if got := r.PluginLine(); got != tt.want {
			t.Errorf("PluginLine(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestUnknown(t *testing.T) {
	r := Unknown("pool '%s' not found", "rbd")
	if r.Status != StatusUnknown {
		t.Errorf("expected status %q, got %q", StatusUnknown, r.Status)
	}
	if r.Message != "pool 'rbd' not found" {
		t.Errorf("unexpected message: %s", r.Message)
	}
}
