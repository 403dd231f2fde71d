package sim

import "testing"

func TestMonitor_PeakLinesTrackMaxOnly(t *testing.T) {
	m := NewMonitor()
	m.sampleInspectionLine(3)
	m.sampleInspectionLine(1)
	m.sampleInspectionLine(5)
	m.sampleInspectionLine(2)
	if got := m.PeakInspectionLine(); got != 5 {
		t.Errorf("PeakInspectionLine = %d, want 5", got)
	}

	m.sampleGateLine(GateA, 2)
	m.sampleGateLine(GateA, 7)
	m.sampleGateLine(GateB, 10)
	if got := m.PeakGateLine(GateA); got != 7 {
		t.Errorf("PeakGateLine(A) = %d, want 7", got)
	}
	if got := m.PeakGateLineMax(); got != 10 {
		t.Errorf("PeakGateLineMax = %d, want 10", got)
	}
}

func TestMonitor_InspectionUtilization(t *testing.T) {
	m := NewMonitor()
	m.recordEventTime(0)
	m.recordEventTime(100)
	// Two agents, each busy 50 of 100 seconds: total busy 100 over span*N=200.
	m.recordInspectionBusy(0, 0, 50)
	m.recordInspectionBusy(1, 0, 50)
	if got := m.InspectionUtilization(2); got != 0.5 {
		t.Errorf("InspectionUtilization = %v, want 0.5", got)
	}
}

func TestMonitor_InspectionUtilizationZeroSpan(t *testing.T) {
	m := NewMonitor()
	if got := m.InspectionUtilization(5); got != 0 {
		t.Errorf("InspectionUtilization with zero span = %v, want 0", got)
	}
}

func TestMonitor_GateUtilizationFiltersByGate(t *testing.T) {
	m := NewMonitor()
	m.recordEventTime(0)
	m.recordEventTime(100)
	m.recordTurnstileBusy(GateA, 0, 0, 100) // fully busy the whole span
	m.recordTurnstileBusy(GateB, 0, 0, 10)
	if got := m.GateUtilization(GateA, 1); got != 1.0 {
		t.Errorf("GateUtilization(A) = %v, want 1.0", got)
	}
	if got := m.GateUtilization(GateB, 1); got != 0.1 {
		t.Errorf("GateUtilization(B) = %v, want 0.1", got)
	}
}

func TestMonitor_Span(t *testing.T) {
	m := NewMonitor()
	m.recordEventTime(-50)
	m.recordEventTime(10)
	m.recordEventTime(30)
	if got := m.Span(); got != 80 {
		t.Errorf("Span = %d, want 80", got)
	}
}
