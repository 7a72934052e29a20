package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/dialogue"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// applyDialogueChoose drives one option choice through the player's active
// dialogue table and applies whatever side effects it produces. A missing
// table, an unknown state, or a no-op re-read of the same prompt all fall
// through silently rather than erroring, matching the stale-input drop
// contract the rest of applyCommands uses.
func applyDialogueChoose(ctx *Context, state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, optionId entities.Id) []entities.Event {
	if player.DialogueName == "" {
		return nil
	}
	table, ok := ctx.Dialogues[player.DialogueName]
	if !ok {
		return nil
	}
	changed, effects, switchTo, err := dialogue.Execute(table, player, optionId)
	if err != nil || !changed {
		return nil
	}
	for _, effect := range effects {
		applyDialogueEffect(ctx, state, idx, player, effect, switchTo)
	}
	return []entities.Event{{Kind: entities.EventDialogueTriggered, PlayerId: player.Id, Tick: state.Ticks}}
}

func applyDialogueEffect(ctx *Context, state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player, effect dialogue.SideEffect, switchTo string) {
	switch effect {
	case dialogue.EffectUndock:
		applyUndock(state, idx, player)
	case dialogue.EffectQuestCargoPickup:
		if player.Quest != nil && player.Quest.Stage == entities.QuestStarted {
			player.Quest.Stage = entities.QuestPicked
		}
	case dialogue.EffectQuestCargoDropOff:
		if player.Quest != nil && player.Quest.Stage == entities.QuestPicked {
			player.Quest.Stage = entities.QuestDelivered
		}
	case dialogue.EffectQuestCollectReward:
		if player.Quest != nil && player.Quest.Stage == entities.QuestDelivered {
			player.Money += player.Quest.Reward
			player.Quest.Active = false
		}
	case dialogue.EffectSellMinerals:
		sellAllMinerals(state, idx, player)
	case dialogue.EffectQuitTutorial:
		player.DialogueStateId = nil
		player.DialogueName = ""
	case dialogue.EffectSwitchDialogue:
		if next, ok := ctx.Dialogues[switchTo]; ok {
			player.DialogueName = switchTo
			initial := next.Initial
			player.DialogueStateId = &initial
		}
	}
}

// sellAllMinerals liquidates every mineral stack in the player's ship cargo
// against the planet it is currently docked at, at the planet's buy price —
// the "sell cargo" dialogue option rather than the Trade command's
// itemized form.
func sellAllMinerals(state *entities.GameState, idx *entities.GameStateIndexes, player *entities.Player) {
	ship := playerShip(state, idx, player)
	if ship == nil || ship.DockedAtPlanetId == nil {
		return
	}
	planetId := *ship.DockedAtPlanetId
	prices, ok := state.Market.Prices[planetId]
	if !ok {
		return
	}
	wares := state.Market.Wares[planetId]
	for _, t := range entities.MineralTypes {
		qty := ship.Inventory.QuantityOf(t)
		if qty <= 0 {
			continue
		}
		ship.Inventory, _ = ship.Inventory.Consume(t, qty)
		player.Money += prices[t].Buy * qty
		wares = wares.Add(entities.InventoryItem{ItemType: t, Quantity: qty})
	}
	state.Market.Wares[planetId] = wares
}
