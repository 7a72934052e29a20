// Package bots drives AI-controlled ships through the same player-action
// surface a human uses: a pure act() decision pass per tick that reads
// GameState and produces a new Bot value plus the actions it wants to
// take, leaving all mutation to the tick driver that already holds the
// locks/indexes needed to apply them.
package bots

import (
	"github.com/gorbit/orbitalrush/internal/sim/dialogue"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// AiTrait tags a behavioral disposition a bot can carry; a bot may carry
// more than one.
type AiTrait uint8

const (
	TraitTrader AiTrait = iota
	TraitAggressive
	TraitPassive
)

// QuestActDelayMicro is how long a bot waits between dialogue choices once
// it starts talking, matching the original's pacing so a bot doesn't spam
// every option in the same tick it opens a conversation.
const QuestActDelayMicro = 2 * 1000 * 1000

// TickBudget caps how many bots get a full act() pass in a single tick, so
// a room with many bots spreads their decisions across several ticks
// instead of spending one tick's whole budget on AI.
const TickBudget = 8

// Bot is one AI-controlled player's standing decision state.
type Bot struct {
	Id        entities.Id
	Traits    []AiTrait
	DialogueCooldownMicro int64
}

// ActionKind tags which player-equivalent action a bot wants performed.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionDockNavigate // go dock/undock at TargetPlanetId
	ActionSpeak        // pick DialogueOptionId within the bot's active dialogue
)

// Action is one decision a bot wants applied this tick.
type Action struct {
	Kind             ActionKind
	TargetPlanetId   entities.Id
	DialogueOptionId entities.Id
}

// Act is the pure per-bot decision function: given the bot's own state, the
// room's GameState, elapsed time, and the dialogue table/state for its
// active conversation (if any), it returns the bot's updated standing
// state and zero or more actions for the tick driver to apply.
func Act(bot Bot, state *entities.GameState, elapsedMicro int64, table dialogue.CompiledTable, hasTable bool) (Bot, []Action) {
	idx := entities.BuildIndexes(state)
	player, ok := idx.FindPlayer(state, bot.Id)
	if !ok || player.ShipId == nil {
		return bot, nil
	}
	ship, ok := idx.FindShip(state, *player.ShipId)
	if !ok {
		return bot, nil
	}

	if player.DialogueStateId != nil && hasTable {
		return actOnDialogue(bot, state, player, ship, elapsedMicro, table)
	}

	if player.Quest == nil || !player.Quest.Active {
		return bot, nil
	}
	conditions := dialogue.CheckTriggerConditions(state, player, ship)
	switch {
	case player.Quest.Stage == entities.QuestStarted && !conditions[dialogue.TriggerCurrentPlanetIsPickup]:
		return bot, []Action{{Kind: ActionDockNavigate, TargetPlanetId: player.Quest.PickupPlanetId}}
	case player.Quest.Stage == entities.QuestPicked && !conditions[dialogue.TriggerCurrentPlanetIsDropoff]:
		return bot, []Action{{Kind: ActionDockNavigate, TargetPlanetId: player.Quest.DropoffPlanetId}}
	}
	return bot, nil
}

func actOnDialogue(bot Bot, state *entities.GameState, player *entities.Player, ship *entities.Ship, elapsedMicro int64, table dialogue.CompiledTable) (Bot, []Action) {
	bot.DialogueCooldownMicro -= elapsedMicro
	if bot.DialogueCooldownMicro > 0 {
		return bot, nil
	}
	bot.DialogueCooldownMicro = QuestActDelayMicro

	node, ok := table.Nodes[*player.DialogueStateId]
	if !ok {
		return bot, nil
	}
	conditions := dialogue.CheckTriggerConditions(state, player, ship)
	visible := dialogue.VisibleOptions(node, conditions)
	if len(visible) == 0 {
		return bot, nil
	}
	return bot, []Action{{Kind: ActionSpeak, DialogueOptionId: visible[0].Id}}
}
