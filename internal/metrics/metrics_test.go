package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("double registration must be tolerated: %v", err)
	}
}

func TestObserversDoNotPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	ObserveScan(25*time.Millisecond, OutcomeSuccess)
	ObserveScan(-time.Second, "bogus")
	SetScanGauges(map[string]int{"UNASSIGNED_OWNER": 3}, 12000, 0.24)
	SetScanGauges(nil, 0, 0)
	ObserveFixApplied("ASSIGN_OWNER")
}
