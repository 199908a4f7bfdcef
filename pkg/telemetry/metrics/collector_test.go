package metrics

import (
	"testing"
	"time"

	"portal-hq/chronicle/pkg/config"
)

// TestNewCollector_DoesNotMutateConfig tests that namespace defaulting
// happens on an internal copy, leaving the caller's config untouched.
func TestNewCollector_DoesNotMutateConfig(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}

	collector := NewCollector(cfg, nil)
	collector.RecordRequest("GET", "/v1/actions", 200, 5*time.Millisecond)

	if cfg.Namespace != "" {
		t.Errorf("Expected caller config namespace to stay empty, got %q", cfg.Namespace)
	}

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	found := false
	for _, family := range families {
		if family.GetName() == "chronicle_http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("Expected the default namespace to apply to registered metrics")
	}
}

// TestCollector_Disabled tests that recording is a no-op when metrics
// are disabled.
func TestCollector_Disabled(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false}

	collector := NewCollector(cfg, nil)
	collector.RecordRequest("GET", "/v1/actions", 200, time.Millisecond)
	collector.RecordActionCreated()
	collector.RecordActionsDeleted("request", 3)
	collector.RecordSweep(1, nil)

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	for _, family := range families {
		switch family.GetName() {
		case "chronicle_http_requests_total":
			t.Error("Expected no request samples when disabled")
		case "chronicle_actions_created_total":
			if v := family.GetMetric()[0].GetCounter().GetValue(); v != 0 {
				t.Errorf("Expected created counter to stay 0 when disabled, got %v", v)
			}
		}
	}
}
