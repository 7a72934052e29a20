package physics

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// SemiImplicitEuler performs a semi-implicit Euler (symplectic Euler)
// integration step: velocity is updated first, then position is updated
// from the new velocity. Used by internal/sim/kinematics to drift a
// wreck's free velocity vector, the one body in this simulation that isn't
// stepped along a fixed heading or phase-cache orbit.
//
// Algorithm:
//  1. v_new = v_old + a * dt
//  2. p_new = p_old + v_new * dt
func SemiImplicitEuler(pos, vel, acc entities.Vec2, dt float64) (newPos, newVel entities.Vec2) {
	// Step 1: Update velocity: v_new = v_old + a * dt
	newVel = vel.Add(acc.Scale(dt))

	// Step 2: Update position using new velocity: p_new = p_old + v_new * dt
	newPos = pos.Add(newVel.Scale(dt))

	return newPos, newVel
}
