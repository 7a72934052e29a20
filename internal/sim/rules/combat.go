package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/combat"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/kinematics"
	"github.com/gorbit/orbitalrush/internal/sim/longaction"
)

// ticksElapsed converts a tick's elapsed microseconds into whole simulated
// ticks for the turret cooldown, which is expressed in ticks rather than
// microseconds (wreck decay counts microseconds); Step is always called once
// per tick, so this is always 1 in practice, but deriving it from
// elapsedMicro rather than hardcoding keeps the cooldown math honest about
// what it depends on.
func ticksElapsed(elapsedMicro int64) int64 {
	if elapsedMicro <= 0 {
		return 0
	}
	return 1
}

// decrementTurretCooldowns ticks every ship's turrets down by one tick,
// floored at zero.
func decrementTurretCooldowns(loc *entities.Location, elapsedMicro int64) {
	delta := ticksElapsed(elapsedMicro)
	for si := range loc.Ships {
		turrets := loc.Ships[si].Turrets
		for ti := range turrets {
			turrets[ti].CooldownRemaining -= delta
			if turrets[ti].CooldownRemaining < 0 {
				turrets[ti].CooldownRemaining = 0
			}
		}
	}
}

// regenShipHealth applies passive regen to every ship with a nonzero regen
// rate.
func regenShipHealth(loc *entities.Location) {
	for i := range loc.Ships {
		loc.Ships[i].Health.Regen()
	}
}

// advanceWrecks decays and drifts every wreck, marking expired ones for
// cleanup.
func advanceWrecks(loc *entities.Location, elapsedMicro int64) {
	for i := range loc.Wrecks {
		w := &loc.Wrecks[i]
		kinematics.UpdateDriftingSpatial(elapsedMicro, &w.Spatial, &w.Velocity)
		w.Decay = w.Decay.Tick(elapsedMicro)
		if w.Decay.Expired() {
			w.ToClean = true
		}
	}
}

// friendOrFoe classifies two specifiers for combat/explosion resolution: a
// hit between two player-controlled ships is always Friend (there is no
// PvP toggle in this model), everything else is Foe. Bots and pirates carry
// no PlayerId, so an NPC ship is always a valid target.
func friendOrFoe(loc *entities.Location) combat.FoFResolver {
	return func(shooter, target entities.ObjectSpecifier) entities.FriendOrFoe {
		if shooter == target {
			return entities.Friend
		}
		if isPlayerShip(loc, shooter) && isPlayerShip(loc, target) {
			return entities.Friend
		}
		return entities.Foe
	}
}

func isPlayerShip(loc *entities.Location, spec entities.ObjectSpecifier) bool {
	if spec.Kind != entities.ObjectShip {
		return false
	}
	for i := range loc.Ships {
		if loc.Ships[i].Id == spec.Id {
			return loc.Ships[i].PlayerId != nil
		}
	}
	return false
}

// processShipDeaths converts every ship whose health has reached zero into
// a Wreck carrying a fraction of its momentum plus a Container holding its
// cargo, detaches it from its owning player, and cancels any in-flight
// trans-system jump the player had queued.
func processShipDeaths(state *entities.GameState, loc *entities.Location) []entities.Event {
	var events []entities.Event
	var survivors []entities.Ship
	for i := range loc.Ships {
		ship := loc.Ships[i]
		if !ship.Health.Dead() {
			survivors = append(survivors, ship)
			continue
		}

		velocity := deathVelocity(ship)
		loc.Wrecks = append(loc.Wrecks, entities.Wreck{
			Id:       entities.NewRandomId(),
			Spatial:  ship.Spatial,
			Velocity: velocity.Scale(entities.WreckVelocityScale),
			Decay:    entities.ProcessProps{RemainingTicks: wreckDecayMicro},
		})
		if len(ship.Inventory) > 0 {
			loc.Containers = append(loc.Containers, entities.Container{
				Id:       entities.NewRandomId(),
				Position: ship.Spatial.Position,
				Items:    ship.Inventory,
			})
		}

		events = append(events, entities.Event{Kind: entities.EventShipDied, ShipId: ship.Id, Tick: state.Ticks})

		if ship.PlayerId != nil {
			for pi := range state.Players {
				if state.Players[pi].Id == *ship.PlayerId {
					state.Players[pi].ShipId = nil
					longaction.CancelTransSystemJumpsOnDeath(&state.Players[pi])
					break
				}
			}
		}
	}
	loc.Ships = survivors
	return events
}

// wreckDecayMicro is how long a wreck drifts before disappearing, expressed
// in the same elapsed-microseconds units ProcessProps.Tick consumes
// elsewhere (projectile Expires counts down the same way).
const wreckDecayMicro = 60 * 1000 * 1000

func deathVelocity(ship entities.Ship) entities.Vec2 {
	speed := shipLinearSpeed(ship.Movement)
	if speed == 0 {
		return entities.Zero()
	}
	return entities.NewVec2(0, 1).Rotate(ship.Spatial.Rotation).Scale(speed)
}
