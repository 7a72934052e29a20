// Package trajectory produces the polyline a ship follows toward a
// navigation target or docking approach, used both as a client preview and
// as the actual step sequence navigation consumes tick by tick.
package trajectory

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// StepMicro is the fixed time slice each trajectory step represents.
const StepMicro = 250 * 1000

// MaxIterations bounds how many points a trajectory may contain.
const MaxIterations = 10

// BuildToPoint produces at most MaxIterations points stepping from "from"
// toward "to" at the linear speed carried by movement, stopping once the
// remaining distance is smaller than one step's shift (the final approach
// is left to normal movement rather than a trajectory point landing exactly
// on the target, which would fight floating-point equality every tick).
func BuildToPoint(from, to entities.Vec2, movement entities.Movement) []entities.Vec2 {
	maxShift := StepMicro * currentLinearSpeed(movement)
	if maxShift <= 0 {
		return nil
	}

	var result []entities.Vec2
	current := from
	for i := 0; i < MaxIterations; i++ {
		if current.DistanceTo(to) < maxShift {
			break
		}
		current = moveToward(current, to, maxShift)
		result = append(result, current)
	}
	return result
}

// moveToward advances "from" toward "to" by exactly shift units (or all the
// way to "to" if shift overshoots it).
func moveToward(from, to entities.Vec2, shift float64) entities.Vec2 {
	direction := to.Sub(from)
	dist := direction.Length()
	if dist <= shift || dist == 0 {
		return to
	}
	return from.Add(direction.Normalize().Scale(shift))
}

func currentLinearSpeed(m entities.Movement) float64 {
	switch m.Kind {
	case entities.MovementShipMonotonous, entities.MovementShipAccelerated:
		return m.LinearSpeed
	default:
		return 0
	}
}
