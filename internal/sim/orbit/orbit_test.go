package orbit

import (
	"math"
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOrbit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Orbit Suite")
}

var _ = Describe("PhaseCache", Label("scope:unit", "layer:sim", "dep:none", "b:orbit-cache", "r:high"), func() {
	It("produces a table of the fixed sample size at the requested radius", func() {
		cache := NewPhaseCache()
		entry := cache.Get(100)
		Expect(entry.Table).To(HaveLen(PhaseTableSize))
		for _, p := range entry.Table {
			Expect(p.Length()).To(BeNumerically("~", 100, 1e-9))
		}
	})

	It("reuses the cached entry for the same radius instead of rebuilding", func() {
		cache := NewPhaseCache()
		a := cache.Get(42)
		b := cache.Get(42)
		Expect(a).To(BeIdenticalTo(b))
		Expect(cache.Len()).To(Equal(1))
	})

	It("produces byte-identical tables across independently built caches", func() {
		a := NewPhaseCache().Get(77)
		b := NewPhaseCache().Get(77)
		Expect(a.Digest).To(Equal(b.Digest))
	})

	It("produces different digests for different radii", func() {
		a := NewPhaseCache().Get(50)
		b := NewPhaseCache().Get(60)
		Expect(a.Digest).NotTo(Equal(b.Digest))
	})
})

var _ = Describe("PhaseIndex", Label("scope:unit", "layer:sim", "dep:none", "b:orbit-cache", "r:high"), func() {
	It("wraps around at the full period", func() {
		idx0 := PhaseIndex(0, 1000, 0)
		idxFull := PhaseIndex(1000, 1000, 0)
		Expect(idx0).To(Equal(idxFull))
	})

	It("applies the start phase as a fixed offset", func() {
		base := PhaseIndex(0, 1000, 0)
		offset := PhaseIndex(0, 1000, 10)
		Expect(offset).To(Equal((base + 10) % PhaseTableSize))
	})

	It("panics for a non-positive period", func() {
		Expect(func() { PhaseIndex(0, 0, 0) }).To(Panic())
	})
})

var _ = Describe("RestoreAbsolutePositions", Label("scope:unit", "loop:orbit-tree", "layer:sim", "dep:none", "b:anchor-walk", "r:high"), func() {
	It("resolves a multi-tier anchor tree (star -> planet -> moon) regardless of input order", func() {
		star := &entities.Star{Id: entities.NewRandomId(), Spatial: entities.SpatialProps{Position: entities.NewVec2(10, 10)}}

		planet := &entities.PlanetV2{Id: entities.NewRandomId(), Tier: 1}
		planet.Movement = entities.Movement{
			Kind:        entities.MovementRadialMonotonous,
			Anchor:      star.Specifier(),
			RelativePos: entities.NewVec2(100, 0),
		}

		moon := &entities.PlanetV2{Id: entities.NewRandomId(), Tier: 2}
		moon.Movement = entities.Movement{
			Kind:        entities.MovementRadialMonotonous,
			Anchor:      planet.Specifier(),
			RelativePos: entities.NewVec2(5, 0),
		}

		// moon listed before planet: the pass must still converge.
		RestoreAbsolutePositions(star, []entities.Body{moon, planet})

		Expect(planet.Spatial.Position).To(Equal(entities.NewVec2(110, 10)))
		Expect(moon.Spatial.Position).To(Equal(entities.NewVec2(115, 10)))
	})

	It("panics when a body's anchor never resolves", func() {
		star := &entities.Star{Id: entities.NewRandomId()}
		orphan := &entities.PlanetV2{Id: entities.NewRandomId()}
		orphan.Movement = entities.Movement{
			Kind:   entities.MovementRadialMonotonous,
			Anchor: entities.Specifier(entities.ObjectPlanet, entities.NewRandomId()),
		}
		Expect(func() {
			RestoreAbsolutePositions(star, []entities.Body{orphan})
		}).To(Panic())
	})
})

var _ = Describe("CarryBeltAsteroids", Label("scope:unit", "layer:sim", "dep:none", "b:belt-rigidity", "r:med"), func() {
	It("carries every asteroid by its fixed offset from the belt position", func() {
		belt := &entities.AsteroidBelt{
			Spatial:   entities.SpatialProps{Position: entities.NewVec2(200, 0)},
			Asteroids: []entities.Asteroid{{}, {}},
			Offsets:   []entities.Vec2{entities.NewVec2(1, 0), entities.NewVec2(0, 1)},
		}
		CarryBeltAsteroids(belt)
		Expect(belt.Asteroids[0].Spatial.Position).To(Equal(entities.NewVec2(201, 0)))
		Expect(belt.Asteroids[1].Spatial.Position).To(Equal(entities.NewVec2(200, 1)))
	})

	It("panics on a mismatched offsets/asteroids count", func() {
		belt := &entities.AsteroidBelt{
			Asteroids: []entities.Asteroid{{}},
			Offsets:   []entities.Vec2{},
		}
		Expect(func() { CarryBeltAsteroids(belt) }).To(Panic())
	})
})

var _ = Describe("UpdateRadialMovement", Label("scope:unit", "layer:sim", "dep:none", "b:orbit-update", "r:high"), func() {
	It("skips bodies outside the limit area", func() {
		cache := NewPhaseCache()
		indexes := &entities.GameStateIndexes{AnchorDistances: map[entities.ObjectSpecifier]float64{}}
		planet := &entities.PlanetV2{Id: entities.NewRandomId(), Spatial: entities.SpatialProps{Position: entities.NewVec2(9999, 9999)}}
		planet.Movement = entities.Movement{Kind: entities.MovementRadialMonotonous, FullPeriodTicks: 100}
		indexes.AnchorDistances[planet.Specifier()] = 10

		far := entities.AABBAround(entities.Zero(), 1)
		UpdateRadialMovement(0, far, indexes, cache, []entities.Body{planet})
		Expect(planet.Movement.Phase).To(BeNil())
	})

	It("sets a phase and relative position for bodies inside the limit area", func() {
		cache := NewPhaseCache()
		indexes := &entities.GameStateIndexes{AnchorDistances: map[entities.ObjectSpecifier]float64{}}
		planet := &entities.PlanetV2{Id: entities.NewRandomId()}
		planet.Movement = entities.Movement{Kind: entities.MovementRadialMonotonous, FullPeriodTicks: 100}
		indexes.AnchorDistances[planet.Specifier()] = 10

		near := entities.AABBAround(entities.Zero(), 1000)
		UpdateRadialMovement(0, near, indexes, cache, []entities.Body{planet})
		Expect(planet.Movement.Phase).NotTo(BeNil())
		Expect(planet.Movement.RelativePos.Length()).To(BeNumerically("~", 10, 1e-9))
	})
})

var _ = Describe("phase table geometry", Label("scope:unit", "layer:sim", "dep:none", "b:orbit-cache", "r:low"), func() {
	It("samples the full circle uniformly", func() {
		cache := NewPhaseCache()
		entry := cache.Get(1)
		first := entry.Table[0]
		quarter := entry.Table[PhaseTableSize/4]
		Expect(first.Angle()).To(BeNumerically("~", 0, 1e-9))
		Expect(quarter.Angle()).To(BeNumerically("~", math.Pi/2, 1e-6))
	})
})
