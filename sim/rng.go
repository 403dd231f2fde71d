package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for PartitionedRNG. Splitting the per-run seed into
// independent streams means the arrival generator's rejection loop and the
// three service-time samplers each draw from their own stream, so adding
// or removing draws in one subsystem never perturbs another's trajectory.
const (
	SubsystemArrivals   = "arrivals"
	SubsystemInspection = "inspection"
	SubsystemWalk       = "walk"
	SubsystemTurnstile  = "turnstile"
)

// PartitionedRNG provides deterministic, isolated *rand.Rand streams per
// subsystem, all derived from one master seed by XORing it with an FNV
// hash of the subsystem name. One PartitionedRNG exists per simulation
// run.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{masterSeed: masterSeed, subsystems: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the (lazily created, cached) *rand.Rand for the
// named subsystem. The same name always returns the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := p.masterSeed ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
