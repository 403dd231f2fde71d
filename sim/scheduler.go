package sim

import "fmt"

// Scheduler owns the Future Event List and the current simulated-time
// clock. It is an explicit, non-singleton object: every Simulator owns
// one, so concurrent runs never share scheduling state.
type Scheduler struct {
	fel         *EventHeap
	currentTime int64
	nextSeq     uint64
	started     bool
}

// NewScheduler creates an empty scheduler. currentTime is undefined until
// the first event is popped; Advance sets it from the popped event's time.
func NewScheduler() *Scheduler {
	return &Scheduler{fel: NewEventHeap()}
}

// nextSequence returns the next monotonically increasing insertion index,
// appended to every scheduled event's sort key.
func (s *Scheduler) nextSequence() uint64 {
	seq := s.nextSeq
	s.nextSeq++
	return seq
}

// scheduleChecked guards every schedule call. Arrival pre-generation may
// schedule times earlier than currentTime=0 (the clock starts negative, at
// kickoff-relative arrival times), so the check only applies once the
// scheduler has begun advancing: from then on, scheduling strictly before
// currentTime is an invariant violation.
func (s *Scheduler) scheduleChecked(time int64) {
	if s.started && time < s.currentTime {
		panic(fmt.Sprintf("INVARIANT_VIOLATION: scheduled event at time %d before current_time %d", time, s.currentTime))
	}
}

// CurrentTime returns the clock's current simulated-time value.
func (s *Scheduler) CurrentTime() int64 { return s.currentTime }

// Empty reports whether the FEL holds no more events.
func (s *Scheduler) Empty() bool { return s.fel.Empty() }

// PeekTime returns the time of the next event without removing it, and
// whether any event remains.
func (s *Scheduler) PeekTime() (int64, bool) {
	e := s.fel.Peek()
	if e == nil {
		return 0, false
	}
	return e.Time(), true
}

// Advance pops the next event and sets currentTime to its time. Returns
// nil if the FEL is empty.
func (s *Scheduler) Advance() Event {
	e := s.fel.PopNext()
	if e == nil {
		return nil
	}
	if s.started && e.Time() < s.currentTime {
		panic(fmt.Sprintf("INVARIANT_VIOLATION: clock went backwards: %d < %d", e.Time(), s.currentTime))
	}
	s.currentTime = e.Time()
	s.started = true
	return e
}

func (s *Scheduler) scheduleArrival(time int64, fan *Fan) {
	s.scheduleChecked(time)
	s.fel.Schedule(newArrivalEvent(time, fan, s.nextSequence()))
}

func (s *Scheduler) scheduleInspectionEnd(time int64, fan *Fan, agentID int, busyStart int64) {
	s.scheduleChecked(time)
	s.fel.Schedule(newInspectionEndEvent(time, fan, agentID, busyStart, s.nextSequence()))
}

func (s *Scheduler) scheduleGateArrival(time int64, fan *Fan) {
	s.scheduleChecked(time)
	s.fel.Schedule(newGateArrivalEvent(time, fan, s.nextSequence()))
}

func (s *Scheduler) scheduleTurnstileEnd(time int64, fan *Fan, gate Gate, turnstileID int, busyStart int64) {
	s.scheduleChecked(time)
	s.fel.Schedule(newTurnstileEndEvent(time, fan, gate, turnstileID, busyStart, s.nextSequence()))
}
