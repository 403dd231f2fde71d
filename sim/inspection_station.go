package sim

// inspectionAgent is one pat-down inspection server: idle or busy serving a
// fan, with cumulative service accounting.
type inspectionAgent struct {
	id int

	busy        bool
	current     *Fan
	busyStart   int64
	servedCount int64
	totalBusy   int64
}

// InspectionStation is the shared pool of inspection agents plus one FIFO
// line. The allocation invariant (line empty whenever an agent is idle) is
// maintained by the driver (Simulator), not by this component.
type InspectionStation struct {
	agents []*inspectionAgent
	Line   *FIFOLine
}

// NewInspectionStation creates a station with n agents, ids 0..n-1.
func NewInspectionStation(n int) *InspectionStation {
	agents := make([]*inspectionAgent, n)
	for i := range agents {
		agents[i] = &inspectionAgent{id: i}
	}
	return &InspectionStation{agents: agents, Line: NewFIFOLine("inspection")}
}

// NumAgents returns the configured agent count.
func (s *InspectionStation) NumAgents() int { return len(s.agents) }

// findIdleAgent returns the lowest-id idle agent, or nil. The
// lowest-id-first tiebreak keeps runs reproducible even though it biases
// utilization toward low ids.
func (s *InspectionStation) findIdleAgent() *inspectionAgent {
	for _, a := range s.agents {
		if !a.busy {
			return a
		}
	}
	return nil
}

// startService marks agent busy serving fan from time t.
func (s *InspectionStation) startService(a *inspectionAgent, fan *Fan, t int64) {
	a.busy = true
	a.current = fan
	a.busyStart = t
}

// endService marks agent idle, accumulating its completed service interval.
// Panics if the agent was not busy: finalizing service on an idle server
// is an invariant violation.
func (s *InspectionStation) endService(a *inspectionAgent, t int64) {
	if !a.busy {
		panic("INVARIANT_VIOLATION: inspection agent finalized while idle")
	}
	a.totalBusy += t - a.busyStart
	a.servedCount++
	a.busy = false
	a.current = nil
}

// agentByID looks up an agent by id, panicking if it's out of range (a
// scheduled event referencing a nonexistent agent is an invariant
// violation).
func (s *InspectionStation) agentByID(id int) *inspectionAgent {
	if id < 0 || id >= len(s.agents) {
		panic("INVARIANT_VIOLATION: inspection agent id out of range")
	}
	return s.agents[id]
}
