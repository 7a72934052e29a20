package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/longaction"
	"github.com/gorbit/orbitalrush/internal/sim/market"
	"github.com/gorbit/orbitalrush/internal/sim/trajectory"
)

// setShipNavigation points a ship at a navigation target and builds the
// trajectory it will follow tick by tick, the same polyline a client
// preview would show.
func setShipNavigation(ship *entities.Ship, target entities.Vec2) {
	ship.NavigateTarget = &target
	ship.Trajectory = trajectory.BuildToPoint(ship.Spatial.Position, target, ship.Movement)
}

// applyDock starts a docking approach toward planetId, dropping the command
// silently if the ship has no ship, the planet doesn't exist in its current
// location, or it is already docked.
func applyDock(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, planetId entities.Id) {
	ship := playerShip(state, idx, player)
	if ship == nil || ship.DockedAtPlanetId != nil {
		return
	}
	shipLoc := idx.ShipsByID[*player.ShipId].LocationIdx
	planetLoc, ok := idx.PlanetsByID[planetId]
	if !ok || planetLoc.LocationIdx != shipLoc {
		return
	}
	planet := &state.Locations[planetLoc.LocationIdx].Planets[planetLoc.Idx]
	player.LongActions = append(player.LongActions, longaction.StartDock(ship, planet))
}

// applyUndock clears a ship's docked state immediately; undocking has no
// windup, unlike docking.
func applyUndock(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player) {
	ship := playerShip(state, idx, player)
	if ship == nil || ship.DockedAtPlanetId == nil {
		return
	}
	ship.DockedAtPlanetId = nil
}

// applyStartJump enqueues a trans-system jump, silently dropping the
// command if one is already in flight for this player.
func applyStartJump(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, targetLocationId entities.Id) {
	if player.ShipId == nil {
		return
	}
	_ = longaction.StartTransSystemJump(player, targetLocationId)
}

// applyStartShoot enqueues a turret windup, silently dropping the command
// if the player has no ship or the turret doesn't exist. Cooldown is not
// checked here (nor by StartShoot); the combat package checks it at Finish
// time.
func applyStartShoot(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, turretId string, target entities.ObjectSpecifier) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	action, err := longaction.StartShoot(ship, turretId, target)
	if err != nil {
		return
	}
	player.LongActions = append(player.LongActions, action)
}

// applyTrade executes a trade at the planet the player's ship is currently
// docked at, dropping the command if the ship isn't docked there.
func applyTrade(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, action market.TradeAction) {
	ship := playerShip(state, idx, player)
	if ship == nil || ship.DockedAtPlanetId == nil || *ship.DockedAtPlanetId != action.PlanetId {
		return
	}
	_ = market.AttemptTrade(&state.Market, player, ship, action)
}
