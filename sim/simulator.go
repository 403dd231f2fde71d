package sim

import "math/rand"

// Simulator wires the FEL/scheduler, the two queueing stations, the
// arrival generator's output, the service-time samplers, and the resource
// monitor into the four event handlers. A single struct holds all per-run
// state with no package-level globals, so independent runs in the
// RunAggregator never share mutable state.
type Simulator struct {
	cfg *Config

	scheduler  *Scheduler
	inspection *InspectionStation
	gates      *GateStation
	monitor    *Monitor

	rng *PartitionedRNG

	inspectionSampler *InspectionSampler
	walkSampler       *WalkSampler
	turnstileSampler  *TurnstileSampler

	fans []*Fan
}

// NewSimulator builds a Simulator from cfg and a master seed. Fan arrivals
// are pre-generated and scheduled before the first Advance.
func NewSimulator(cfg *Config, seed int64) *Simulator {
	rng := NewPartitionedRNG(seed)

	s := &Simulator{
		cfg:        cfg,
		scheduler:  NewScheduler(),
		inspection: NewInspectionStation(cfg.AgentsInspection),
		gates:      NewGateStation(cfg.TurnstilesPerGate),
		monitor:    NewMonitor(),
		rng:        rng,

		inspectionSampler: NewInspectionSampler(cfg.InspectionMean, cfg.InspectionStdDev, cfg.InspectionFloor),
		walkSampler:       NewWalkSampler(),
		turnstileSampler: NewTurnstileSampler(
			cfg.TurnstileFastMu, cfg.TurnstileFastSigma,
			cfg.TurnstileProblemProb, cfg.TurnstileProblemMu, cfg.TurnstileProblemSigma,
		),
	}

	s.fans = GenerateArrivals(cfg, rng.ForSubsystem(SubsystemArrivals))
	for _, f := range s.fans {
		s.scheduler.scheduleArrival(f.Arrival, f)
	}
	return s
}

// Fans returns every fan generated for this run (completed or not; after
// Run returns, all are complete).
func (s *Simulator) Fans() []*Fan { return s.fans }

// Monitor returns this run's resource monitor.
func (s *Simulator) Monitor() *Monitor { return s.monitor }

// Config returns this run's configuration.
func (s *Simulator) Config() *Config { return s.cfg }

// Run drains the FEL, dispatching each event to its handler, until empty.
// Panics (an invariant violation) if any un-completed fan remains once the
// FEL is empty — every scheduled ARRIVAL must eventually produce exactly
// one TURNSTILE_END.
func (s *Simulator) Run() {
	for !s.scheduler.Empty() {
		e := s.scheduler.Advance()
		s.monitor.recordEventTime(e.Time())
		e.Execute(s)
	}
	for _, f := range s.fans {
		if !f.Complete() {
			panic("INVARIANT_VIOLATION: FEL empty with incomplete fan")
		}
	}
}

func (s *Simulator) inspectionRNG() *rand.Rand { return s.rng.ForSubsystem(SubsystemInspection) }
func (s *Simulator) walkRNG() *rand.Rand       { return s.rng.ForSubsystem(SubsystemWalk) }
func (s *Simulator) turnstileRNG() *rand.Rand  { return s.rng.ForSubsystem(SubsystemTurnstile) }

// handleArrival serves a newly arrived fan immediately on an idle
// inspection agent, or joins the inspection FIFO.
func (s *Simulator) handleArrival(e *ArrivalEvent) {
	now := e.Time()
	fan := e.Fan
	fan.advance(PhaseArrived)

	if agent := s.inspection.findIdleAgent(); agent != nil {
		s.beginInspection(agent, fan, now)
	} else {
		s.inspection.Line.Enqueue(fan, now)
	}
	s.monitor.sampleInspectionLine(s.inspection.Line.Size())
}

func (s *Simulator) beginInspection(agent *inspectionAgent, fan *Fan, now int64) {
	s.inspection.startService(agent, fan, now)
	fan.advance(PhaseInspectionStarted)
	fan.InspectionStart = now
	d := s.inspectionSampler.Sample(s.inspectionRNG())
	s.scheduler.scheduleInspectionEnd(now+int64(d), fan, agent.id, now)
}

// handleInspectionEnd records busy-time, frees the agent, pulls the next
// waiting fan onto the same agent if any, then schedules the completed
// fan's walk to its gate.
func (s *Simulator) handleInspectionEnd(e *InspectionEndEvent) {
	now := e.Time()
	agent := s.inspection.agentByID(e.AgentID)
	s.monitor.recordInspectionBusy(e.AgentID, e.BusyStart, now)
	s.inspection.endService(agent, now)

	fan := e.Fan
	fan.advance(PhaseInspectionEnded)
	fan.InspectionEnd = now

	if next := s.inspection.Line.Dequeue(now); next != nil {
		s.beginInspection(agent, next, now)
	}
	s.monitor.sampleInspectionLine(s.inspection.Line.Size())

	base := s.cfg.WalkBaseSeconds[fan.Esplanade][fan.Gate]
	w := s.walkSampler.Sample(s.walkRNG(), float64(base))
	s.scheduler.scheduleGateArrival(now+int64(w), fan)
}

// handleGateArrival serves a fan immediately on an idle turnstile at its
// gate, or joins that gate's FIFO.
func (s *Simulator) handleGateArrival(e *GateArrivalEvent) {
	now := e.Time()
	fan := e.Fan
	fan.advance(PhaseAtGate)
	fan.GateArrival = now

	bank := s.gates.Bank(fan.Gate)
	if ts := bank.findIdleTurnstile(); ts != nil {
		s.beginTurnstile(bank, ts, fan, now)
	} else {
		bank.Line.Enqueue(fan, now)
	}
	s.monitor.sampleGateLine(fan.Gate, bank.Line.Size())
}

func (s *Simulator) beginTurnstile(bank *GateBank, ts *turnstile, fan *Fan, now int64) {
	bank.startService(ts, fan, now)
	fan.advance(PhaseTurnstileStarted)
	fan.TurnstileStart = now
	d := s.turnstileSampler.Sample(s.turnstileRNG())
	s.scheduler.scheduleTurnstileEnd(now+int64(d), fan, bank.gate, ts.id, now)
}

// handleTurnstileEnd records busy-time, frees the turnstile, completes the
// fan, then pulls the next waiting fan onto the same turnstile if any.
func (s *Simulator) handleTurnstileEnd(e *TurnstileEndEvent) {
	now := e.Time()
	bank := s.gates.Bank(e.Gate)
	ts := bank.turnstileByID(e.TurnstileID)
	s.monitor.recordTurnstileBusy(e.Gate, e.TurnstileID, e.BusyStart, now)
	bank.endService(ts, now)

	fan := e.Fan
	fan.advance(PhaseComplete)
	fan.TurnstileEnd = now

	if next := bank.Line.Dequeue(now); next != nil {
		s.beginTurnstile(bank, ts, next, now)
	}
}
