package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/bots"
	"github.com/gorbit/orbitalrush/internal/sim/dialogue"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// dockApproachDistance is how close a bot's navigation target must bring it
// to a planet before the bot issues the actual Dock long action, instead of
// still closing distance.
const dockApproachDistance = 20.0

// runBots drives up to bots.TickBudget bot decisions this tick, round-robin
// across ctx.Bots so a room with more bots than the budget still gives every
// bot a turn over a handful of ticks rather than starving the tail of the
// slice. Bot actions are applied through the same mutation paths a player
// command would use.
func runBots(state *entities.GameState, idx *entities.GameStateIndexes, elapsedMicro int64, ctx *Context) []entities.Event {
	n := len(ctx.Bots)
	if n == 0 {
		return nil
	}
	var events []entities.Event
	start := int(state.Ticks % int64(n))
	count := bots.TickBudget
	if count > n {
		count = n
	}
	for i := 0; i < count; i++ {
		bi := (start + i) % n
		bot := ctx.Bots[bi]
		table, hasTable := dialogueTableForBot(ctx, state, idx, bot.Id)
		updated, actions := bots.Act(bot, state, elapsedMicro, table, hasTable)
		ctx.Bots[bi] = updated
		for _, action := range actions {
			events = append(events, applyBotAction(ctx, state, idx, bot.Id, action)...)
		}
	}
	return events
}

func dialogueTableForBot(ctx *Context, state *entities.GameState, idx *entities.GameStateIndexes, playerId entities.Id) (dialogue.CompiledTable, bool) {
	player, ok := idx.FindPlayer(state, playerId)
	if !ok || player.DialogueName == "" {
		return dialogue.CompiledTable{}, false
	}
	table, ok := ctx.Dialogues[player.DialogueName]
	return table, ok
}

func applyBotAction(ctx *Context, state *entities.GameState, idx *entities.GameStateIndexes, playerId entities.Id, action bots.Action) []entities.Event {
	player, ok := idx.FindPlayer(state, playerId)
	if !ok {
		return nil
	}
	switch action.Kind {
	case bots.ActionDockNavigate:
		botDockNavigate(state, idx, player, action.TargetPlanetId)
	case bots.ActionSpeak:
		return applyDialogueChoose(ctx, state, idx, player, action.DialogueOptionId)
	}
	return nil
}

func botDockNavigate(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, planetId entities.Id) {
	ship := playerShip(state, idx, player)
	if ship == nil {
		return
	}
	if ship.DockedAtPlanetId != nil {
		if *ship.DockedAtPlanetId == planetId {
			return
		}
		applyUndock(state, idx, player)
		return
	}

	planetLoc, ok := idx.PlanetsByID[planetId]
	if !ok {
		return
	}
	planet := &state.Locations[planetLoc.LocationIdx].Planets[planetLoc.Idx]
	if ship.Spatial.Position.DistanceTo(planet.Spatial.Position) <= planet.Radius+dockApproachDistance {
		applyDock(state, idx, player, planetId)
		return
	}
	if ship.NavigateTarget == nil {
		setShipNavigation(ship, planet.Spatial.Position)
	}
}
