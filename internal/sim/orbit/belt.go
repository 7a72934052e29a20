package orbit

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// CarryBeltAsteroids positions every member asteroid rigidly relative to its
// belt, once the belt itself has an up-to-date absolute position (i.e. after
// the belt has gone through UpdateRadialMovement and RestoreAbsolutePositions
// like any other radial body). Each asteroid's position is the belt's
// position plus the fixed offset recorded on it at spawn time — this is the
// resolution of "what does an unspecified asteroid belt update do": rather
// than each asteroid orbiting independently at its own radius and period
// (which would require inventing per-asteroid orbital elements nothing else
// in the simulation assigns them), the belt is one rigid ring that rotates
// as a unit and carries its asteroids along with it.
func CarryBeltAsteroids(belt *entities.AsteroidBelt) {
	if len(belt.Offsets) != len(belt.Asteroids) {
		panic("orbit: belt has a mismatched offsets/asteroids count")
	}
	for i := range belt.Asteroids {
		belt.Asteroids[i].Spatial.Position = belt.Spatial.Position.Add(belt.Offsets[i])
	}
}
