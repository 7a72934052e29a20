package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/combat"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/longaction"
)

// Default fighter loadout used whenever a ship needs to be spawned from
// nothing (respawn): there is no ship-template/loadout catalogue elsewhere
// in the system yet, so this package owns the one default until a content
// layer replaces it.
const (
	defaultShipMaxHealth        = 100.0
	defaultShipLinearAcceleration = 40.0
	defaultShipLinearDrag         = 10.0
	defaultShipMaxLinearSpeed     = 120.0

	defaultTurretId            = "primary"
	defaultTurretDamage         = 10.0
	defaultTurretRange          = 250.0
	defaultTurretCooldownTicks  = 10
	defaultTurretWindupMicro    = 200 * 1000
)

// projectileTemplates names the projectile payload a turret's
// ProjectileTemplate field selects. Only one template exists today; this is
// where a content catalogue would plug in more.
var projectileTemplates = map[string]entities.Projectile{
	"missile": {
		Movement:  entities.NewShipMonotonousMovement(0.5, 0),
		Damage:    25,
		Explosion: &entities.ExplosionProps{Radius: 15, Damage: 25, AppliedForce: 50},
		Expires:   &entities.ProcessProps{RemainingTicks: 3_000_000},
	},
}

// tickLongActions advances every player's long actions by one tick,
// applying the terminal effect of anything that finishes. It must run
// after ship-death processing in the same tick, so a Shoot/Dock/Jump whose
// owning ship just died is resolved against its cancellation rather than a
// stale reference.
func tickLongActions(state *entities.GameState, idx *entities.GameStateIndexes, elapsedMicro int64) []entities.Event {
	var events []entities.Event
	exists := targetExists(state)

	for pi := range state.Players {
		player := &state.Players[pi]
		longaction.CancelShootOnMissingTarget(player, exists)

		kept := player.LongActions[:0:0]
		for _, action := range player.LongActions {
			updated, keepTicking := longaction.Tick(action, elapsedMicro)
			if keepTicking {
				kept = append(kept, updated)
				continue
			}
			events = append(events, finishLongAction(state, idx, player, longaction.Finish(updated))...)
		}
		player.LongActions = kept
	}
	return events
}

func finishLongAction(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, result longaction.FinishResult) []entities.Event {
	switch result.Kind {
	case entities.LongActionTransSystemJump:
		return finishTransSystemJump(state, idx, player, result.TargetLocationId)
	case entities.LongActionRespawn:
		return finishRespawn(state, player)
	case entities.LongActionDock:
		return finishDock(state, idx, player, result.TargetPlanetId)
	case entities.LongActionShoot:
		return finishShoot(state, idx, player, result.ShootTurretId, result.ShootTarget)
	default:
		return nil
	}
}

func finishTransSystemJump(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, targetLocationId entities.Id) []entities.Event {
	if player.ShipId == nil {
		return nil
	}
	loc, ok := idx.ShipsByID[*player.ShipId]
	if !ok {
		return nil
	}
	targetIdx := -1
	for li := range state.Locations {
		if state.Locations[li].Id == targetLocationId {
			targetIdx = li
			break
		}
	}
	if targetIdx < 0 || targetIdx == loc.LocationIdx {
		return nil
	}

	src := &state.Locations[loc.LocationIdx]
	ship := src.Ships[loc.ShipIdx]
	src.Ships = append(src.Ships[:loc.ShipIdx], src.Ships[loc.ShipIdx+1:]...)

	ship.Spatial.Position = locationEntryPoint(&state.Locations[targetIdx])
	ship.NavigateTarget = nil
	ship.Trajectory = nil
	dst := &state.Locations[targetIdx]
	dst.Ships = append(dst.Ships, ship)

	return []entities.Event{{Kind: entities.EventPlayerJumped, PlayerId: player.Id, ShipId: ship.Id, LocationId: targetLocationId, Tick: state.Ticks}}
}

func finishRespawn(state *entities.GameState, player *entities.Player) []entities.Event {
	if player.ShipId != nil || len(state.Locations) == 0 {
		return nil
	}
	loc := &state.Locations[0]
	ship := spawnDefaultShip(locationEntryPoint(loc))
	loc.Ships = append(loc.Ships, *ship)
	player.ShipId = &ship.Id

	return []entities.Event{{Kind: entities.EventShipSpawned, PlayerId: player.Id, ShipId: ship.Id, Tick: state.Ticks}}
}

func finishDock(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, planetId entities.Id) []entities.Event {
	if player.ShipId == nil {
		return nil
	}
	ship, ok := idx.FindShip(state, *player.ShipId)
	if !ok {
		return nil
	}
	ship.DockedAtPlanetId = &planetId
	ship.NavigateTarget = nil
	ship.Trajectory = nil
	return []entities.Event{{Kind: entities.EventShipDocked, PlayerId: player.Id, ShipId: ship.Id, PlanetId: planetId, Tick: state.Ticks}}
}

func finishShoot(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, turretId string, target entities.ObjectSpecifier) []entities.Event {
	if player.ShipId == nil {
		return nil
	}
	shipLoc, ok := idx.ShipsByID[*player.ShipId]
	if !ok {
		return nil
	}
	loc := &state.Locations[shipLoc.LocationIdx]
	ship := &loc.Ships[shipLoc.ShipIdx]
	turret := ship.FindTurret(turretId)
	if turret == nil {
		return nil
	}

	resolve := friendOrFoe(loc)
	if turret.ProjectileTemplate == "" {
		_ = combat.Shoot(loc, ship, turretId, target, state.Millis, resolve)
		return nil
	}
	template, ok := projectileTemplates[turret.ProjectileTemplate]
	if !ok {
		return nil
	}
	_, _ = combat.Launch(loc, ship, turretId, target, template, state.Millis, resolve)
	return nil
}

func spawnDefaultShip(pos entities.Vec2) *entities.Ship {
	ship := entities.NewShip(entities.NewRandomId(), pos, defaultShipMaxHealth)
	ship.Movement = entities.NewShipAcceleratedMovement(defaultShipLinearAcceleration, defaultShipLinearDrag, defaultShipMaxLinearSpeed, 0, 0, 0)
	ship.Turrets = []entities.Turret{{
		Id:            defaultTurretId,
		Damage:        defaultTurretDamage,
		Range:         defaultTurretRange,
		CooldownTicks: defaultTurretCooldownTicks,
		WindupMicro:   defaultTurretWindupMicro,
	}}
	return ship
}

// locationEntryPoint is where a ship materializes on jump-in or respawn:
// just outward from the star, or the origin for a starless location.
func locationEntryPoint(loc *entities.Location) entities.Vec2 {
	if loc.Star == nil {
		return entities.Zero()
	}
	return loc.Star.Spatial.Position.Add(entities.NewVec2(loc.Star.Radius+50, 0))
}

// targetExists reports whether an ObjectSpecifier still resolves to a live
// ship, mineral, or container anywhere in state, used to drop a Shoot long
// action whose target died mid-windup.
func targetExists(state *entities.GameState) func(entities.ObjectSpecifier) bool {
	return func(spec entities.ObjectSpecifier) bool {
		for li := range state.Locations {
			loc := &state.Locations[li]
			switch spec.Kind {
			case entities.ObjectShip:
				for i := range loc.Ships {
					if loc.Ships[i].Id == spec.Id {
						return true
					}
				}
			case entities.ObjectMineral:
				for i := range loc.Minerals {
					if loc.Minerals[i].Id == spec.Id {
						return true
					}
				}
			case entities.ObjectContainer:
				for i := range loc.Containers {
					if loc.Containers[i].Id == spec.Id {
						return true
					}
				}
			}
		}
		return false
	}
}
