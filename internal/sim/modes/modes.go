// Package modes implements the per-GameMode rule set: quest generation and
// payout for cargo rush (no win condition is checked), a periodic wave
// signal and loss condition for pirate defence (the wave signal is an event
// only; no ships are spawned), and the no-op pass-through for
// sandbox/tutorial. It is the mode-rules sub-phase of the tick driver,
// always run after long actions finish and before bots act so a
// freshly-completed quest or a wave signal is visible to the same tick's
// bot decisions.
package modes

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// QuestRewardMin/Max bound the random cargo-rush payout, matching the
// original's 500..1000 range.
const (
	QuestRewardMin = 500
	QuestRewardMax = 1000
)

// WaveIntervalMicro is how often pirate defence signals a new wave.
const WaveIntervalMicro = 30 * 1000 * 1000

// Apply runs the rules for state.Mode against the current tick, returning
// any events it wants appended to the shared event queue (quest
// completions, wave signals and the pirate-defence loss notification the
// dialogue/notification layer may want to react to).
func Apply(state *entities.GameState, elapsedMicro int64, prng *entities.Prng) []entities.Event {
	switch state.Mode {
	case entities.ModeCargoRush:
		return applyCargoRush(state, prng)
	case entities.ModePirateDefence:
		return applyPirateDefence(state, elapsedMicro, prng)
	default:
		return nil
	}
}

func applyCargoRush(state *entities.GameState, prng *entities.Prng) []entities.Event {
	var events []entities.Event
	planetIds := allPlanetIds(state)
	if len(planetIds) < 2 {
		return nil
	}
	for pi := range state.Players {
		player := &state.Players[pi]
		if player.ShipId == nil {
			continue
		}
		if player.Quest == nil {
			assignRandomQuest(player, planetIds, prng)
			continue
		}
		if player.Quest.Stage == entities.QuestDelivered {
			player.Money += player.Quest.Reward
			events = append(events, entities.Event{Kind: entities.EventQuestCompleted, PlayerId: player.Id, Tick: state.Ticks})
			assignRandomQuest(player, planetIds, prng)
		}
	}
	return events
}

func assignRandomQuest(player *entities.Player, planetIds []entities.Id, prng *entities.Prng) {
	from := entities.Pick(prng, planetIds)
	var rest []entities.Id
	for _, id := range planetIds {
		if id != from {
			rest = append(rest, id)
		}
	}
	if len(rest) == 0 {
		return
	}
	to := entities.Pick(prng, rest)
	reward := QuestRewardMin + int32(prng.IntN(QuestRewardMax-QuestRewardMin+1))
	player.Quest = &entities.Quest{
		Active:          true,
		Stage:           entities.QuestStarted,
		PickupPlanetId:  from,
		DropoffPlanetId: to,
		MineralType:     entities.ItemCommonMineral,
		Reward:          reward,
	}
}

func allPlanetIds(state *entities.GameState) []entities.Id {
	var out []entities.Id
	for _, loc := range state.Locations {
		for _, p := range loc.Planets {
			out = append(out, p.Id)
		}
	}
	return out
}

// applyPirateDefence ends the game once every player ship is dead, and
// otherwise signals a new wave every time GameState.Millis crosses a
// WaveIntervalMicro/1000 boundary — a pure function of the room's own
// wall-clock counter rather than hidden package state, so it replays
// identically from a reconstructed GameState.
func applyPirateDefence(state *entities.GameState, elapsedMicro int64, prng *entities.Prng) []entities.Event {
	var events []entities.Event

	aliveDefenders := 0
	for _, loc := range state.Locations {
		for _, s := range loc.Ships {
			if s.PlayerId != nil && !s.Health.Dead() {
				aliveDefenders++
			}
		}
	}
	if aliveDefenders == 0 && !state.GameOver {
		state.GameOver = true
		events = append(events, entities.Event{Kind: entities.EventShipDied, Tick: state.Ticks})
		return events
	}

	waveIntervalMillis := int64(WaveIntervalMicro / 1000)
	elapsedMillis := elapsedMicro / 1000
	before := state.Millis - elapsedMillis
	if before/waveIntervalMillis != state.Millis/waveIntervalMillis {
		events = append(events, entities.Event{Kind: entities.EventUnknown, Tick: state.Ticks})
	}
	return events
}
