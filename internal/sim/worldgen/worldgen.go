// Package worldgen procedurally scatters an asteroid belt's members around
// a star system, restoring the world-generation step the distilled
// specification otherwise leaves as "spawn some asteroids" — grounded on
// system_gen.rs's belt/planet scattering, reimplemented here with a
// simplex-noise field driving each asteroid's radial jitter instead of a
// uniform random draw, so two adjacent asteroids land at correlated rather
// than independently-random offsets within the belt's width.
package worldgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// BeltSpec describes the belt to generate.
type BeltSpec struct {
	Anchor       entities.ObjectSpecifier // always the star
	MiddleRadius float64
	Width        float64
	Count        int
	FullPeriodTicks int64
	HealthPerRock   float64
}

// GenerateBelt builds a rigid AsteroidBelt (see internal/sim/orbit's belt
// rigidity note) with Count asteroids scattered within [MiddleRadius-Width/2,
// MiddleRadius+Width/2], their angular spacing perturbed by a simplex-noise
// field seeded from seed so regenerating the same seed reproduces the same
// scatter (needed for replay/bot determinism, same contract as
// entities.Prng).
func GenerateBelt(seed int64, spec BeltSpec, startPhase uint32, idPrng *entities.Prng) entities.AsteroidBelt {
	noise := opensimplex.New(seed)

	belt := entities.AsteroidBelt{
		Id:           idPrng.Id(),
		Movement:     entities.NewRadialMonotonousMovement(spec.Anchor, spec.MiddleRadius, spec.FullPeriodTicks, startPhase),
		Width:        spec.Width,
		MiddleRadius: spec.MiddleRadius,
	}

	for i := 0; i < spec.Count; i++ {
		frac := float64(i) / float64(spec.Count)
		angle := frac * 2 * math.Pi

		// Sample noise twice at offset coordinates to get two
		// independent-looking but deterministic jitter channels.
		radialJitter := noise.Eval2(math.Cos(angle)*4, math.Sin(angle)*4)
		angularJitter := noise.Eval2(math.Cos(angle)*4+100, math.Sin(angle)*4+100)

		radius := spec.MiddleRadius + radialJitter*spec.Width/2
		jitteredAngle := angle + angularJitter*(math.Pi/float64(spec.Count))

		relOffset := entities.FromAngle(jitteredAngle).Scale(radius)
		belt.Offsets = append(belt.Offsets, relOffset)

		var health *entities.Health
		if spec.HealthPerRock > 0 {
			h := entities.NewHealth(spec.HealthPerRock)
			health = &h
		}
		belt.Asteroids = append(belt.Asteroids, entities.Asteroid{
			Id:       idPrng.Id(),
			Spatial:  entities.SpatialProps{Position: belt.Spatial.Position.Add(relOffset)},
			Movement: entities.NewNoneMovement(),
			Health:   health,
		})
	}

	return belt
}
