package telemetry

import (
	"context"
	"testing"
)

func TestStripScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://collector:4317", "collector:4317"},
		{"https://collector:4317", "collector:4317"},
		{"collector:4317", "collector:4317"},
	}

	for _, tt := range tests {
		if got := stripScheme(tt.in); got != tt.want {
			t.Errorf("stripScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetupTracer_NoEndpoint(t *testing.T) {
	shutdown, err := SetupTracer(context.Background(), "test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown error: %v", err)
	}
}
