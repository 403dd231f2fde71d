package sim

// EventType identifies which handler processes an event.
type EventType string

const (
	EventArrival       EventType = "ARRIVAL"
	EventInspectionEnd EventType = "INSPECTION_END"
	EventGateArrival   EventType = "GATE_ARRIVAL"
	EventTurnstileEnd  EventType = "TURNSTILE_END"
)

// Event is one scheduled occurrence in the simulation. Implementations are
// immutable after scheduling; each variant carries only the fields its
// handler needs — a sum type, not a generic property bag.
type Event interface {
	Time() int64
	Seq() uint64
	Type() EventType
	Execute(s *Simulator)
}

// baseEvent supplies the fields common to every event variant.
type baseEvent struct {
	time int64
	seq  uint64
	typ  EventType
}

func newBaseEvent(time int64, typ EventType, seq uint64) baseEvent {
	return baseEvent{time: time, typ: typ, seq: seq}
}

func (e *baseEvent) Time() int64     { return e.time }
func (e *baseEvent) Seq() uint64     { return e.seq }
func (e *baseEvent) Type() EventType { return e.typ }

// ArrivalEvent represents a fan arriving outside the perimeter.
type ArrivalEvent struct {
	baseEvent
	Fan *Fan
}

func newArrivalEvent(time int64, fan *Fan, seq uint64) *ArrivalEvent {
	return &ArrivalEvent{baseEvent: newBaseEvent(time, EventArrival, seq), Fan: fan}
}

func (e *ArrivalEvent) Execute(s *Simulator) { s.handleArrival(e) }

// InspectionEndEvent represents an inspection agent finishing a fan.
type InspectionEndEvent struct {
	baseEvent
	Fan       *Fan
	AgentID   int
	BusyStart int64
}

func newInspectionEndEvent(time int64, fan *Fan, agentID int, busyStart int64, seq uint64) *InspectionEndEvent {
	return &InspectionEndEvent{
		baseEvent: newBaseEvent(time, EventInspectionEnd, seq),
		Fan:       fan,
		AgentID:   agentID,
		BusyStart: busyStart,
	}
}

func (e *InspectionEndEvent) Execute(s *Simulator) { s.handleInspectionEnd(e) }

// GateArrivalEvent represents a fan finishing the walk from the esplanade
// and arriving at their assigned gate.
type GateArrivalEvent struct {
	baseEvent
	Fan *Fan
}

func newGateArrivalEvent(time int64, fan *Fan, seq uint64) *GateArrivalEvent {
	return &GateArrivalEvent{baseEvent: newBaseEvent(time, EventGateArrival, seq), Fan: fan}
}

func (e *GateArrivalEvent) Execute(s *Simulator) { s.handleGateArrival(e) }

// TurnstileEndEvent represents a turnstile finishing a fan's passage.
type TurnstileEndEvent struct {
	baseEvent
	Fan         *Fan
	Gate        Gate
	TurnstileID int
	BusyStart   int64
}

func newTurnstileEndEvent(time int64, fan *Fan, gate Gate, turnstileID int, busyStart int64, seq uint64) *TurnstileEndEvent {
	return &TurnstileEndEvent{
		baseEvent:   newBaseEvent(time, EventTurnstileEnd, seq),
		Fan:         fan,
		Gate:        gate,
		TurnstileID: turnstileID,
		BusyStart:   busyStart,
	}
}

func (e *TurnstileEndEvent) Execute(s *Simulator) { s.handleTurnstileEnd(e) }
