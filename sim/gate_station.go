package sim

// turnstile is one gate-admission server: idle or busy serving a fan, with
// cumulative service accounting.
type turnstile struct {
	id   int
	gate Gate

	busy        bool
	current     *Fan
	busyStart   int64
	servedCount int64
	totalBusy   int64
}

// GateBank is one gate's fixed-size turnstile bank plus its FIFO line.
type GateBank struct {
	gate       Gate
	turnstiles []*turnstile
	Line       *FIFOLine
}

// NewGateBank creates a bank of n turnstiles for gate g, ids 0..n-1.
func NewGateBank(g Gate, n int) *GateBank {
	ts := make([]*turnstile, n)
	for i := range ts {
		ts[i] = &turnstile{id: i, gate: g}
	}
	return &GateBank{gate: g, turnstiles: ts, Line: NewFIFOLine("gate-" + string(g))}
}

// NumTurnstiles returns the configured turnstile count for this gate.
func (b *GateBank) NumTurnstiles() int { return len(b.turnstiles) }

// findIdleTurnstile returns the lowest-id idle turnstile in the bank, or
// nil. Same deterministic tiebreak as InspectionStation.findIdleAgent.
func (b *GateBank) findIdleTurnstile() *turnstile {
	for _, t := range b.turnstiles {
		if !t.busy {
			return t
		}
	}
	return nil
}

func (b *GateBank) startService(t *turnstile, fan *Fan, at int64) {
	t.busy = true
	t.current = fan
	t.busyStart = at
}

// endService marks t idle, accumulating its completed service interval.
// Panics if t was not busy.
func (b *GateBank) endService(t *turnstile, at int64) {
	if !t.busy {
		panic("INVARIANT_VIOLATION: turnstile finalized while idle")
	}
	t.totalBusy += at - t.busyStart
	t.servedCount++
	t.busy = false
	t.current = nil
}

func (b *GateBank) turnstileByID(id int) *turnstile {
	if id < 0 || id >= len(b.turnstiles) {
		panic("INVARIANT_VIOLATION: turnstile id out of range for gate")
	}
	return b.turnstiles[id]
}

// GateStation is the full per-gate replication of GateBank: one bank and
// one line per gate.
type GateStation struct {
	banks map[Gate]*GateBank
}

// NewGateStation creates a gate station from a gate→turnstile-count table.
// turnstilesPerGate must cover every gate referenced by fan assignment;
// any gate with a non-positive count is a configuration error, caught by
// Config.Validate before the station is ever built.
func NewGateStation(turnstilesPerGate map[Gate]int) *GateStation {
	banks := make(map[Gate]*GateBank, len(turnstilesPerGate))
	for g, n := range turnstilesPerGate {
		banks[g] = NewGateBank(g, n)
	}
	return &GateStation{banks: banks}
}

// Bank returns the bank for gate g, panicking if the gate has no bank (an
// event referring to an unconfigured gate is an invariant violation).
func (s *GateStation) Bank(g Gate) *GateBank {
	b, ok := s.banks[g]
	if !ok {
		panic("INVARIANT_VIOLATION: gate has no configured turnstile bank: " + string(g))
	}
	return b
}
