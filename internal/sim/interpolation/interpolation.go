// Package interpolation computes an in-between GameState for smoothing
// network updates on the client: a ship lerps position and takes the
// shortest-arc path for rotation, a planet/asteroid/belt interpolates its
// phase index (mod the orbit table size) rather than its raw position, and
// a projectile lerps position only. Every other field is copied from the
// first state whatever the value: GameStates does not apply Discrete, so
// no non-positional field takes the second state's value.
package interpolation

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/orbit"
)

// GameStates interpolates between two GameState snapshots of the same
// room at value in [0, 1]. value=0 reproduces a byte-for-byte copy of a,
// value=1 reproduces b for every interpolated field; every other field,
// and every entity that exists only in b, comes from a. Locations,
// ships, and bodies are matched by index, which holds because both
// snapshots come from the same room's simulation history (no entity
// reordering happens between successive ticks, only append/ToClean-sweep
// at well-defined phase boundaries).
func GameStates(a, b *entities.GameState, value float64, cache *orbit.PhaseCache) entities.GameState {
	out := *a
	out.Locations = make([]entities.Location, len(a.Locations))
	for i := range a.Locations {
		out.Locations[i] = a.Locations[i]
		if i < len(b.Locations) {
			out.Locations[i] = Location(a.Locations[i], b.Locations[i], value, cache)
		}
	}
	return out
}

// Location interpolates one location's ships, bodies, and projectiles.
func Location(a, b entities.Location, value float64, cache *orbit.PhaseCache) entities.Location {
	out := a

	out.Ships = make([]entities.Ship, len(a.Ships))
	for i, ship := range a.Ships {
		out.Ships[i] = ship
		if i < len(b.Ships) {
			out.Ships[i].Spatial = Spatial(ship.Spatial, b.Ships[i].Spatial, value)
		}
	}

	out.Projectiles = make([]entities.Projectile, len(a.Projectiles))
	for i, p := range a.Projectiles {
		out.Projectiles[i] = p
		if i < len(b.Projectiles) {
			out.Projectiles[i].Spatial.Position = Position(p.Spatial.Position, b.Projectiles[i].Spatial.Position, value)
		}
	}

	if out.Star != nil && a.Star != nil && b.Star != nil {
		star := *a.Star
		out.Star = &star
	}

	out.Planets = make([]entities.PlanetV2, len(a.Planets))
	for i, p := range a.Planets {
		out.Planets[i] = p
		if i < len(b.Planets) {
			out.Planets[i].Movement = RadialMovement(p.Movement, b.Planets[i].Movement, value, cache)
		}
	}
	out.Asteroids = make([]entities.Asteroid, len(a.Asteroids))
	for i, ast := range a.Asteroids {
		out.Asteroids[i] = ast
		if i < len(b.Asteroids) {
			out.Asteroids[i].Movement = RadialMovement(ast.Movement, b.Asteroids[i].Movement, value, cache)
		}
	}
	out.Belts = make([]entities.AsteroidBelt, len(a.Belts))
	for i, belt := range a.Belts {
		out.Belts[i] = belt
		if i < len(b.Belts) {
			out.Belts[i].Movement = RadialMovement(belt.Movement, b.Belts[i].Movement, value, cache)
		}
	}

	if out.Star != nil {
		bodies := make([]entities.Body, 0, len(out.Planets)+len(out.Asteroids)+len(out.Belts))
		for i := range out.Planets {
			bodies = append(bodies, &out.Planets[i])
		}
		for i := range out.Asteroids {
			bodies = append(bodies, &out.Asteroids[i])
		}
		for i := range out.Belts {
			bodies = append(bodies, &out.Belts[i])
		}
		orbit.RestoreAbsolutePositions(out.Star, bodies)
		for i := range out.Belts {
			orbit.CarryBeltAsteroids(&out.Belts[i])
		}
	}

	return out
}

// Position lerps a plain point; interpolate(A,A,v)=A and the v=0/v=1
// endpoints hold for any value in between by construction of Vec2.Lerp.
func Position(a, b entities.Vec2, value float64) entities.Vec2 {
	return a.Lerp(b, value)
}

// Spatial lerps position and takes the shortest angular path for rotation.
func Spatial(a, b entities.SpatialProps, value float64) entities.SpatialProps {
	return entities.SpatialProps{
		Position: a.Position.Lerp(b.Position, value),
		Rotation: entities.LerpAngle(a.Rotation, b.Rotation, value),
	}
}

// RadialMovement interpolates a radial body's phase index modulo the orbit
// table size (rather than its raw relative position), taking the shorter
// of the two directions around the table so a body never visibly reverses
// when the phase wraps past the table boundary. The body's RelativePos is
// then looked up fresh from the cache at the interpolated index; absolute
// position is restored by the caller via orbit.RestoreAbsolutePositions
// once every body in the location has an interpolated relative position.
func RadialMovement(a, b entities.Movement, value float64, cache *orbit.PhaseCache) entities.Movement {
	if a.Kind != entities.MovementRadialMonotonous || b.Kind != entities.MovementRadialMonotonous {
		return a
	}
	if a.Phase == nil || b.Phase == nil {
		return a
	}
	out := a
	idx := interpolatePhaseIndex(*a.Phase, *b.Phase, value)
	out.Phase = &idx
	entry := cache.Get(a.Radius)
	out.RelativePos = entry.Table[idx]
	return out
}

func interpolatePhaseIndex(a, b uint32, value float64) uint32 {
	const size = orbit.PhaseTableSize
	diff := int64(b) - int64(a)
	if diff > size/2 {
		diff -= size
	} else if diff < -size/2 {
		diff += size
	}
	result := int64(a) + int64(float64(diff)*value)
	result %= size
	if result < 0 {
		result += size
	}
	return uint32(result)
}

// Discrete snaps a non-interpolable field: a below the v=0.5 midpoint, b at
// or above it.
func Discrete[T any](a, b T, value float64) T {
	if value < 0.5 {
		return a
	}
	return b
}
