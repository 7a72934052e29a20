package rules

import (
	"math"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/kinematics"
)

// navigationEpsilon is how close a ship must get to its NavigateTarget
// before the autopilot considers it arrived rather than creeping forever
// on floating-point residue.
const navigationEpsilon = 1e-6

// updateShipMovement advances every ship in loc by one of two mutually
// exclusive paths: autopilot navigation toward NavigateTarget when one is
// set, or the manual gas/turn markers via kinematics otherwise. A docked
// ship does not move under either path.
func updateShipMovement(elapsedMicro, currentMillis int64, loc *entities.Location) {
	for i := range loc.Ships {
		ship := &loc.Ships[i]
		if ship.DockedAtPlanetId != nil {
			continue
		}
		if ship.NavigateTarget != nil {
			advanceNavigation(elapsedMicro, ship)
			continue
		}
		kinematics.UpdateShipManualMovement(elapsedMicro, currentMillis, ship, false, ship.SkipThrottleDrop)
	}
}

// advanceNavigation moves a ship toward its NavigateTarget in a straight
// line at its own linear speed, facing the direction of travel. Rules
// keeps its own linear-speed lookup since trajectory's is unexported and
// this is the only other place travel speed needs resolving from a
// Movement value.
func advanceNavigation(elapsedMicro int64, ship *entities.Ship) {
	target := *ship.NavigateTarget
	remaining := target.Sub(ship.Spatial.Position)
	dist := remaining.Length()
	if dist < navigationEpsilon {
		ship.NavigateTarget = nil
		ship.Trajectory = nil
		return
	}

	speed := shipLinearSpeed(ship.Movement)
	if speed <= 0 {
		return
	}
	step := speed * float64(elapsedMicro)
	direction := remaining.Normalize()
	// Rotation 0 faces +y (Vec2(0,1).Rotate(rotation)), as in kinematics.
	ship.Spatial.Rotation = math.Atan2(-direction.X, direction.Y)

	if step >= dist {
		ship.Spatial.Position = target
		ship.NavigateTarget = nil
		ship.Trajectory = nil
		return
	}
	ship.Spatial.Position = ship.Spatial.Position.Add(direction.Scale(step))
}

func shipLinearSpeed(m entities.Movement) float64 {
	switch m.Kind {
	case entities.MovementShipMonotonous, entities.MovementShipAccelerated:
		return m.LinearSpeed
	default:
		return 0
	}
}

// radialBodies collects every body in loc that UpdateRadialMovement should
// advance: planets, standalone asteroids, and belts themselves (belt-member
// asteroids are MovementNone and are carried rigidly by CarryBeltAsteroids
// instead of orbiting independently).
func radialBodies(loc *entities.Location) []entities.Body {
	var out []entities.Body
	for i := range loc.Planets {
		out = append(out, &loc.Planets[i])
	}
	for i := range loc.Asteroids {
		if loc.Asteroids[i].Movement.Kind == entities.MovementRadialMonotonous {
			out = append(out, &loc.Asteroids[i])
		}
	}
	for i := range loc.Belts {
		out = append(out, &loc.Belts[i])
	}
	return out
}
