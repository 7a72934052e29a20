package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/longaction"
	"github.com/gorbit/orbitalrush/internal/sim/market"
)

// CommandKind tags which player-equivalent action a Command carries. This
// is the replacement for the old world's two-float InputCommand: a room now
// fans a richer, validated command set in from the transport layer every
// tick instead of a single thrust/turn pair.
type CommandKind uint8

const (
	CommandNone CommandKind = iota
	CommandGas
	CommandTurn
	CommandNavigateTo
	CommandDock
	CommandUndock
	CommandStartJump
	CommandTractorLock
	CommandTractorRelease
	CommandStartShoot
	CommandTrade
	CommandDialogueChoose
	CommandRespawn
	CommandSetPaused
)

// Command is one player-issued instruction queued for a single tick.
// Fields are a union over every CommandKind, the same tagged-struct
// convention entities.Movement/LongAction/Event use for heterogeneous
// per-kind payloads.
type Command struct {
	Kind     CommandKind
	PlayerId entities.Id

	Sign int8 // Gas/Turn: -1, 0, or 1

	NavigateTarget entities.Vec2 // NavigateTo

	PlanetId   entities.Id // Dock
	LocationId entities.Id // StartJump

	TractorTarget entities.ObjectSpecifier // TractorLock

	TurretId    string                   // StartShoot
	ShootTarget entities.ObjectSpecifier // StartShoot

	Trade market.TradeAction // Trade

	DialogueOptionId entities.Id // DialogueChoose

	Paused bool // SetPaused
}

// applyCommands mutates ships/players in place for every command whose
// preconditions hold, and returns any events worth queuing (trade/dialogue
// failures are silent no-ops, matching the precondition-recheck-then-drop
// convention the longaction/combat packages already use — a stale or
// invalid command from a laggy client should never panic or desync the
// room).
func applyCommands(state *entities.GameState, idx *entities.GameStateIndexes, cmds []Command, ctx *Context) []entities.Event {
	var events []entities.Event
	for _, cmd := range cmds {
		player, ok := idx.FindPlayer(state, cmd.PlayerId)
		if !ok {
			continue
		}
		switch cmd.Kind {
		case CommandSetPaused:
			state.Paused = cmd.Paused
		case CommandGas:
			applyManualMarker(state, idx, player, manualGas, cmd.Sign)
		case CommandTurn:
			applyManualMarker(state, idx, player, manualTurn, cmd.Sign)
		case CommandNavigateTo:
			applyNavigateTo(state, idx, player, cmd.NavigateTarget)
		case CommandDock:
			applyDock(state, idx, player, cmd.PlanetId)
		case CommandUndock:
			applyUndock(state, idx, player)
		case CommandStartJump:
			applyStartJump(state, idx, player, cmd.LocationId)
		case CommandTractorLock:
			applyTractorLock(state, idx, player, cmd.TractorTarget)
		case CommandTractorRelease:
			applyTractorRelease(state, idx, player)
		case CommandStartShoot:
			applyStartShoot(state, idx, player, cmd.TurretId, cmd.ShootTarget)
		case CommandTrade:
			applyTrade(state, idx, player, cmd.Trade)
		case CommandDialogueChoose:
			events = append(events, applyDialogueChoose(ctx, state, idx, player, cmd.DialogueOptionId)...)
		case CommandRespawn:
			applyRespawn(player)
		}
	}
	return events
}

type manualMarkerKind uint8

const (
	manualGas manualMarkerKind = iota
	manualTurn
)

// applyManualMarker asserts a ship's Gas or Turn marker, stamped with the
// room's own millisecond clock so kinematics' throttle-drop policy judges
// staleness against simulated time rather than wall-clock time.
func applyManualMarker(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, kind manualMarkerKind, sign int8) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	marker := entities.ManualMovementMarker{Sign: sign, SetAtTick: state.Millis, Set: sign != 0}
	switch kind {
	case manualGas:
		ship.Gas = marker
		if sign != 0 {
			// Taking the stick cancels any autopilot navigation in progress.
			ship.NavigateTarget = nil
			ship.Trajectory = nil
		}
	case manualTurn:
		ship.Turn = marker
	}
}

func applyNavigateTo(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, target entities.Vec2) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	setShipNavigation(ship, target)
}

func applyTractorLock(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, target entities.ObjectSpecifier) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	// tractor.UpdateLocks re-validates distance/existence every tick, so
	// accepting any client-proposed lock here and letting the next
	// sub-phase drop it if out of range is safe.
	ship.TractorTarget = &target
}

func applyTractorRelease(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	ship.TractorTarget = nil
}

func applyRespawn(player *entities.Player) {
	if player.ShipId != nil {
		return
	}
	longaction.StartRespawn(player)
}

// playerShip resolves a player's ship, or nil if it has none/it no longer
// exists — the common precondition every ship-targeted command shares.
func playerShip(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player) *entities.Ship {
	if player.ShipId == nil {
		return nil
	}
	ship, ok := idx.FindShip(state, *player.ShipId)
	if !ok {
		return nil
	}
	return ship
}
