// Package longaction implements the start/tick/finish state machine that
// drives every multi-tick player action (system jumps, respawns, turret
// windups, docking approaches) on top of the entities.LongAction data type.
package longaction

import (
	"errors"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/trajectory"
)

// Fixed-duration action lengths, in microseconds.
const (
	TransSystemJumpMicro = 5 * 1000 * 1000
	RespawnMicro         = 10 * 1000 * 1000
)

var (
	ErrUnknownPlayer = errors.New("longaction: unknown player")
	ErrUnknownShip   = errors.New("longaction: player has no ship")
	ErrUnknownPlanet = errors.New("longaction: unknown planet")
	ErrNoSuchTurret  = errors.New("longaction: no such turret")
	ErrAlreadyJumping = errors.New("longaction: a trans-system jump is already in flight")
)

// StartTransSystemJump enqueues a jump to targetLocationId on the player's
// ship, rejecting a second concurrent jump for the same player.
func StartTransSystemJump(player *entities.Player, targetLocationId entities.Id) error {
	if player.HasTransSystemJump() {
		return ErrAlreadyJumping
	}
	player.LongActions = append(player.LongActions, entities.LongAction{
		Id:               entities.NewRandomId(),
		Kind:             entities.LongActionTransSystemJump,
		TotalMicro:       TransSystemJumpMicro,
		MicroLeft:        TransSystemJumpMicro,
		TargetLocationId: targetLocationId,
	})
	return nil
}

// StartRespawn enqueues a respawn countdown for a player that currently has
// no ship (never cancellable, unlike the other kinds).
func StartRespawn(player *entities.Player) {
	player.LongActions = append(player.LongActions, entities.LongAction{
		Id:         entities.NewRandomId(),
		Kind:       entities.LongActionRespawn,
		TotalMicro: RespawnMicro,
		MicroLeft:  RespawnMicro,
	})
}

// StartShoot builds and returns a turret windup action without adding it to
// any player; its duration comes from the firing turret itself rather than
// a fixed constant.
func StartShoot(ship *entities.Ship, turretId string, target entities.ObjectSpecifier) (entities.LongAction, error) {
	turret := ship.FindTurret(turretId)
	if turret == nil {
		return entities.LongAction{}, ErrNoSuchTurret
	}
	action := entities.LongAction{
		Id:            entities.NewRandomId(),
		Kind:          entities.LongActionShoot,
		TotalMicro:    turret.WindupMicro,
		MicroLeft:     turret.WindupMicro,
		ShootTarget:   target,
		ShootTurretId: turretId,
	}
	return action, nil
}

// StartDock builds and returns a docking approach action without adding it
// to any player, its duration derived from the
// trajectory the ship would need to fly to reach the planet — the same
// polyline used for navigation preview.
func StartDock(ship *entities.Ship, planet *entities.PlanetV2) entities.LongAction {
	points := trajectory.BuildToPoint(ship.Spatial.Position, planet.Spatial.Position, ship.Movement)
	microLeft := int64(len(points)) * trajectory.StepMicro
	return entities.LongAction{
		Id:             entities.NewRandomId(),
		Kind:           entities.LongActionDock,
		TotalMicro:     microLeft,
		MicroLeft:      microLeft,
		TargetPlanetId: planet.Id,
	}
}

func percentageOf(total, left int64) uint32 {
	if total <= 0 {
		return 100
	}
	done := total - left
	if done < 0 {
		done = 0
	}
	pct := float64(done) / float64(total) * 100.0
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return uint32(pct)
}

// Tick advances a long action by elapsedMicro against its own recorded
// TotalMicro, returning the updated action and whether it should keep
// running.
func Tick(action entities.LongAction, elapsedMicro int64) (entities.LongAction, bool) {
	action.MicroLeft -= elapsedMicro
	if action.MicroLeft < 0 {
		action.MicroLeft = 0
	}
	action.Percentage = percentageOf(action.TotalMicro, action.MicroLeft)
	return action, action.KeepTicking()
}

// FinishResult describes the terminal side effect a caller must apply; this
// package computes *what* happened but leaves cross-package mutation (ship
// relocation, spawning, combat resolution) to the tick driver that already
// holds references to every other subsystem.
type FinishResult struct {
	Kind             entities.LongActionKind
	TargetLocationId entities.Id
	TargetPlanetId   entities.Id
	ShootTarget      entities.ObjectSpecifier
	ShootTurretId    string
}

// Finish reports the terminal effect of a completed action without
// performing it, so the tick driver can apply it using whatever location/
// combat/spawn hooks it already has in scope for this tick.
func Finish(action entities.LongAction) FinishResult {
	return FinishResult{
		Kind:             action.Kind,
		TargetLocationId: action.TargetLocationId,
		TargetPlanetId:   action.TargetPlanetId,
		ShootTarget:      action.ShootTarget,
		ShootTurretId:    action.ShootTurretId,
	}
}

// CancelTransSystemJumpsOnDeath drops any in-flight jump belonging to a
// player whose ship has just died; all other kinds are unaffected by ship
// death (Respawn only runs without a ship, Dock/Shoot cancel through their
// own preconditions rather than ship death).
func CancelTransSystemJumpsOnDeath(player *entities.Player) {
	kept := player.LongActions[:0:0]
	for _, a := range player.LongActions {
		if a.Kind == entities.LongActionTransSystemJump {
			continue
		}
		kept = append(kept, a)
	}
	player.LongActions = kept
}

// CancelShootOnMissingTarget drops a Shoot action once its target no longer
// resolves (destroyed mid-windup), silently — matching the precondition-
// recheck-then-drop contract the other preconditions use.
func CancelShootOnMissingTarget(player *entities.Player, targetExists func(entities.ObjectSpecifier) bool) {
	kept := player.LongActions[:0:0]
	for _, a := range player.LongActions {
		if a.Kind == entities.LongActionShoot && !targetExists(a.ShootTarget) {
			continue
		}
		kept = append(kept, a)
	}
	player.LongActions = kept
}
