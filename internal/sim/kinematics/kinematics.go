// Package kinematics advances a ship's position and rotation for one tick,
// covering both movement laws (fixed-speed and accelerated) and the
// manual-input throttle-drop policy.
package kinematics

import (
	"math"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/physics"
)

// TurnSpeedDegPerSec is a ship's fixed angular turn rate.
const TurnSpeedDegPerSec = 90.0

// ManualMovementDropMillis bounds how stale a manual-input marker may be
// before the server treats it as released (the client never drops its own
// markers, since it assumes the player is still holding the key).
const ManualMovementDropMillis = 500

// MinShipSpeed is the scalar-speed threshold below which a ship's velocity
// snaps to exactly zero, eliminating floating-point creep.
const MinShipSpeed = 1e-3

// UpdateShipManualMovement advances one ship's position/rotation by
// elapsedMicro, applying its gas/turn markers and the throttle-drop policy.
// client suppresses the server-side auto-drop of the gas marker (the client
// always assumes the key is still held). skipThrottleDrop additionally
// disables the drop for actions being replayed from the recent past, where
// dropping would desync the replay from what the client already predicted.
func UpdateShipManualMovement(elapsedMicro, currentMillis int64, ship *entities.Ship, client, skipThrottleDrop bool) {
	switch ship.Movement.Kind {
	case entities.MovementShipMonotonous:
		if !maybeDropGasMarker(currentMillis, ship, client, skipThrottleDrop) {
			if sign := gasSign(ship); sign != 0 {
				ship.Spatial.Position = projectPositionBySpeed(elapsedMicro, ship, sign)
			}
		}
	case entities.MovementShipAccelerated:
		maybeDropGasMarker(currentMillis, ship, client, skipThrottleDrop)
		sign := gasSign(ship)
		newSpeed := projectLinearSpeedByAcceleration(elapsedMicro, ship, sign)
		ship.Movement.LinearSpeed = clampSpeed(newSpeed, ship.Movement.MaxLinearSpeed)
		if math.Abs(ship.Movement.LinearSpeed) < MinShipSpeed {
			ship.Movement.LinearSpeed = 0
		}
		ship.Spatial.Position = projectPositionBySpeed(elapsedMicro, ship, 1.0)
	default:
		// Radial/anchored/none bodies never carry manual markers.
	}

	updateTurn(elapsedMicro, currentMillis, ship)
}

func updateTurn(elapsedMicro, currentMillis int64, ship *entities.Ship) {
	if !ship.Turn.Set {
		return
	}
	if abs64(ship.Turn.SetAtTick-currentMillis) > ManualMovementDropMillis {
		ship.Turn.Set = false
		return
	}
	diff := degToRad(TurnSpeedDegPerSec) * float64(elapsedMicro) / 1e6 * float64(ship.Turn.Sign)
	ship.Spatial.Rotation = entities.NormalizeAngle(ship.Spatial.Rotation + diff)
}

func gasSign(ship *entities.Ship) float64 {
	if !ship.Gas.Set {
		return 0
	}
	return float64(ship.Gas.Sign)
}

// maybeDropGasMarker clears a stale gas marker and reports whether it did.
func maybeDropGasMarker(currentMillis int64, ship *entities.Ship, client, skipThrottleDrop bool) bool {
	if !ship.Gas.Set {
		return false
	}
	stale := abs64(ship.Gas.SetAtTick-currentMillis) > ManualMovementDropMillis
	if stale && !client && !skipThrottleDrop {
		ship.Gas.Set = false
		return true
	}
	return false
}

func projectPositionBySpeed(elapsedMicro int64, ship *entities.Ship, sign float64) entities.Vec2 {
	distance := ship.Movement.LinearSpeed * float64(elapsedMicro) * sign
	shift := entities.NewVec2(0, 1).Rotate(ship.Spatial.Rotation).Scale(distance)
	return ship.Spatial.Position.Add(shift)
}

func projectLinearSpeedByAcceleration(elapsedMicro int64, ship *entities.Ship, sign float64) float64 {
	current := ship.Movement.LinearSpeed
	applyDrag := 0.0
	if sign == 0 {
		applyDrag = 1.0
	}
	change := ship.Movement.LinearAcceleration*float64(elapsedMicro)*sign -
		ship.Movement.LinearDrag*applyDrag*float64(elapsedMicro)*signOf(current)
	return current + change
}

func clampSpeed(speed, max float64) float64 {
	if max <= 0 {
		return speed
	}
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

func signOf(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// AdvanceProjectile moves a projectile forward by elapsedMicro at its own
// fixed linear speed, the same forward-facing convention ships use.
func AdvanceProjectile(elapsedMicro int64, spatial *entities.SpatialProps, movement entities.Movement) {
	distance := movement.LinearSpeed * float64(elapsedMicro)
	shift := entities.NewVec2(0, 1).Rotate(spatial.Rotation).Scale(distance)
	spatial.Position = spatial.Position.Add(shift)
}

// UpdateDriftingSpatial advances a non-ship object's (wreck's) position
// along its own free velocity vector, snapping to zero below the minimum-
// speed threshold. Unlike a ship or projectile, a wreck has no rotation-
// locked heading, so it is stepped with physics.SemiImplicitEuler at zero
// acceleration rather than the ship/projectile's forward-facing law.
func UpdateDriftingSpatial(elapsedMicro int64, spatial *entities.SpatialProps, velocity *entities.Vec2) {
	if velocity.Length() < MinShipSpeed {
		*velocity = entities.Zero()
		return
	}
	dt := float64(elapsedMicro)
	newPos, newVel := physics.SemiImplicitEuler(spatial.Position, *velocity, entities.Zero(), dt)
	spatial.Position = newPos
	*velocity = newVel
}
