// Package orbit computes and caches the sampled circular-orbit phase tables
// that every radially-anchored body (planets, moons, asteroid belts) reads
// from each tick instead of integrating an orbit differential equation.
package orbit

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"lukechampine.com/blake3"
)

// PhaseTableSize is the number of samples in one full revolution. A radial
// body's phase index is always taken modulo this size, so every orbit of a
// given radius shares the same table regardless of its period.
const PhaseTableSize = 1024

// cacheKey identifies one orbit shape. Two bodies with the same radius
// produce identical relative-position tables no matter their period, since
// the table only encodes the geometric shape of the orbit; the period only
// selects which sample index is active on a given tick.
type cacheKey struct {
	radius float64
}

// Entry is one cached phase table plus its content digest.
type Entry struct {
	Table  []entities.Vec2
	Digest [32]byte
}

// PhaseCache builds and memoizes phase tables, keyed by orbit radius. It is
// safe for concurrent use, since a Room's rel_orbit_cache is referenced by
// every sub-phase of a tick but only ever built once per radius encountered.
type PhaseCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*Entry
}

// NewPhaseCache builds an empty cache.
func NewPhaseCache() *PhaseCache {
	return &PhaseCache{entries: make(map[cacheKey]*Entry)}
}

// Get returns the phase table for the given orbit radius, building and
// digesting it on first use.
func (c *PhaseCache) Get(radius float64) *Entry {
	key := cacheKey{radius: radius}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e
	}
	e := buildEntry(radius)
	c.entries[key] = e
	return e
}

// Len reports how many distinct orbit radii are currently cached, exposed
// for metrics (a growing cache across many rooms of varied radii is a sign
// that radii aren't being reused from a shared content library).
func (c *PhaseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func buildEntry(radius float64) *Entry {
	table := make([]entities.Vec2, PhaseTableSize)
	for i := 0; i < PhaseTableSize; i++ {
		angle := 2 * math.Pi * float64(i) / float64(PhaseTableSize)
		table[i] = entities.FromAngle(angle).Scale(radius)
	}
	return &Entry{Table: table, Digest: digestTable(table)}
}

// digestTable hashes the table's raw float bytes with blake3, so two
// independently built caches (e.g. a live room and a replay reconstruction)
// can assert they produced byte-identical orbit geometry without comparing
// the full table.
func digestTable(table []entities.Vec2) [32]byte {
	buf := make([]byte, 0, len(table)*16)
	var scratch [8]byte
	for _, v := range table {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v.X))
		buf = append(buf, scratch[:]...)
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v.Y))
		buf = append(buf, scratch[:]...)
	}
	return blake3.Sum256(buf)
}

// PhaseIndex computes the table index for a radial body at currentTicks,
// given its full orbit period and start-phase offset. Both are taken modulo
// PhaseTableSize so a body's phase always resolves into [0, PhaseTableSize).
func PhaseIndex(currentTicks, fullPeriodTicks int64, startPhase uint32) uint32 {
	if fullPeriodTicks <= 0 {
		panic("orbit: non-positive full_period_ticks")
	}
	phaseAbs := uint32((currentTicks % fullPeriodTicks) * PhaseTableSize / fullPeriodTicks)
	return (phaseAbs + startPhase) % PhaseTableSize
}
