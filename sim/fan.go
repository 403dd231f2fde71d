package sim

// Esplanade is a fan's starting zone, which determines the base walk time
// to each gate.
type Esplanade string

const (
	North Esplanade = "North"
	South Esplanade = "South"
)

// Gate is a labeled entry point, each with its own turnstile bank and FIFO
// line.
type Gate string

const (
	GateA Gate = "A"
	GateB Gate = "B"
	GateC Gate = "C"
	GateD Gate = "D"
	GateE Gate = "E"
	GateF Gate = "F"
)

// Gates lists the six gates in canonical order, used wherever a stable
// iteration order is needed (reports, histograms, per-gate tables).
var Gates = []Gate{GateA, GateB, GateC, GateD, GateE, GateF}

// Phase tags how far a Fan has progressed through its lifecycle. The phase
// strictly advances; each timestamp is written once, at the moment the fan
// crosses that boundary — a tagged phase plus timestamps, rather than six
// independently nullable floats. PhasePending is the zero value, so a
// freshly generated Fan (not yet processed by any handler) reports it
// without needing an explicit initializer.
type Phase int

const (
	PhasePending Phase = iota
	PhaseArrived
	PhaseInspectionStarted
	PhaseInspectionEnded
	PhaseAtGate
	PhaseTurnstileStarted
	PhaseComplete
)

// Fan is one stadium-goer's record: identity, assignment, and the six
// lifecycle timestamps (simulated seconds, kickoff = 0).
type Fan struct {
	ID        int
	Esplanade Esplanade
	Gate      Gate

	Phase Phase

	Arrival         int64
	InspectionStart int64
	InspectionEnd   int64
	GateArrival     int64
	TurnstileStart  int64
	TurnstileEnd    int64
}

// Complete reports whether the fan has passed through the turnstile.
func (f *Fan) Complete() bool { return f.Phase == PhaseComplete }

// advance asserts phase p follows the fan's current phase and sets it,
// recording the invariant that lifecycle timestamps are written exactly
// once, strictly in order.
func (f *Fan) advance(p Phase) {
	if p != f.Phase+1 {
		panic("INVARIANT_VIOLATION: fan phase must advance by exactly one step")
	}
	f.Phase = p
}

// WaitInspect is the time spent queueing for an inspection agent.
func (f *Fan) WaitInspect() int64 { return f.InspectionStart - f.Arrival }

// SvcInspect is the inspection service duration.
func (f *Fan) SvcInspect() int64 { return f.InspectionEnd - f.InspectionStart }

// Walk is the esplanade-to-gate walk duration.
func (f *Fan) Walk() int64 { return f.GateArrival - f.InspectionEnd }

// WaitTurn is the time spent queueing for a turnstile.
func (f *Fan) WaitTurn() int64 { return f.TurnstileStart - f.GateArrival }

// SvcTurn is the turnstile service duration.
func (f *Fan) SvcTurn() int64 { return f.TurnstileEnd - f.TurnstileStart }

// Total is the end-to-end duration, arrival to turnstile completion.
func (f *Fan) Total() int64 { return f.TurnstileEnd - f.Arrival }
