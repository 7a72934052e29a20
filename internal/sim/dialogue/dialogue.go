// Package dialogue implements the finite-transducer conversation system: a
// compiled table of (state, option) -> (next state?, side effects) pairs
// per planet/NPC, driven one option choice at a time from a player's
// current DialogueStateId.
package dialogue

import (
	"errors"
	"strings"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// SideEffect is one action a dialogue option produces alongside (or instead
// of) a plain state transition.
type SideEffect uint8

const (
	EffectNothing SideEffect = iota
	EffectUndock
	EffectQuestCargoPickup
	EffectQuestCargoDropOff
	EffectQuestCollectReward
	EffectSellMinerals
	EffectQuitTutorial
	EffectSwitchDialogue
)

// TriggerCondition gates whether an option is visible to a player in their
// current situation.
type TriggerCondition uint8

const (
	TriggerNone TriggerCondition = iota
	TriggerCurrentPlanetIsPickup
	TriggerCurrentPlanetIsDropoff
	TriggerAnyMineralsInCargo
)

// Option is one choice offered at a dialogue state, gated by an optional
// TriggerCondition and carrying substitution tokens ("{planet}", "{name}")
// resolved against GameState at render time.
type Option struct {
	Id        entities.Id
	Text      string
	Condition TriggerCondition
}

// Node is one state of a compiled dialogue: a prompt and the options
// reachable from it.
type Node struct {
	Id      entities.Id
	Prompt  string
	Options []Option
}

// transitionKey identifies one (state, option) edge.
type transitionKey struct {
	State  entities.Id
	Option entities.Id
}

// Transition is the outcome of picking an option: the next state (nil means
// "end of conversation"; the ship is undocked only by an EffectUndock side
// effect) plus any side effects to apply.
type Transition struct {
	NextState *entities.Id
	Effects   []SideEffect
	// SwitchTo names another dialogue to hand control to, populated only
	// when Effects contains EffectSwitchDialogue.
	SwitchTo string
}

// CompiledTable is a ready-to-drive dialogue script: every node plus the
// full transition map, built once by Compile and then shared read-only
// across every room that plays this dialogue.
type CompiledTable struct {
	Name        string
	Nodes       map[entities.Id]Node
	Transitions map[transitionKey]Transition
	Initial     entities.Id
	IsPlanetary bool
}

// ShortScript is the hand-authored source form: one entry per node, with
// its outgoing options inline. Compile resolves text-keyed option targets
// ("next" by node name) into concrete ids.
type ShortScript struct {
	Name        string
	IsPlanetary bool
	Initial     string
	Nodes       []ShortNode
}

type ShortNode struct {
	Name    string
	Prompt  string
	Options []ShortOption
}

type ShortOption struct {
	Text      string
	Next      string // empty means "end conversation"
	Condition TriggerCondition
	Effects   []SideEffect
	SwitchTo  string // dialogue name, only meaningful with EffectSwitchDialogue
}

// Compile turns a ShortScript into a CompiledTable, minting a stable Id per
// named node so the same script compiled twice from the same source
// produces the same node/option ids relative to each other (ids themselves
// are random, but the graph shape and name->id mapping is deterministic
// given one compilation pass, which is all replay needs: the table is
// built once per room and never recompiled mid-game).
func Compile(s ShortScript) (CompiledTable, error) {
	table := CompiledTable{
		Name:        s.Name,
		IsPlanetary: s.IsPlanetary,
		Nodes:       make(map[entities.Id]Node),
		Transitions: make(map[transitionKey]Transition),
	}
	byName := make(map[string]entities.Id, len(s.Nodes))
	for _, n := range s.Nodes {
		byName[n.Name] = entities.NewRandomId()
	}
	initial, ok := byName[s.Initial]
	if !ok {
		return CompiledTable{}, errors.New("dialogue: unknown initial state " + s.Initial)
	}
	table.Initial = initial

	for _, n := range s.Nodes {
		id := byName[n.Name]
		node := Node{Id: id, Prompt: n.Prompt}
		for _, o := range n.Options {
			optId := entities.NewRandomId()
			node.Options = append(node.Options, Option{Id: optId, Text: o.Text, Condition: o.Condition})
			var next *entities.Id
			if o.Next != "" {
				target, ok := byName[o.Next]
				if !ok {
					return CompiledTable{}, errors.New("dialogue: unknown target state " + o.Next)
				}
				next = &target
			}
			table.Transitions[transitionKey{State: id, Option: optId}] = Transition{
				NextState: next,
				Effects:   o.Effects,
				SwitchTo:  o.SwitchTo,
			}
		}
		table.Nodes[id] = node
	}
	return table, nil
}

var (
	ErrUnknownState     = errors.New("dialogue: unknown current state")
	ErrUnknownOption    = errors.New("dialogue: unknown option for state")
	ErrOptionNotVisible = errors.New("dialogue: option hidden by trigger condition")
)

// CheckTriggerConditions reports which conditions currently hold for a
// player, used both to filter visible options and to let a bot decide
// which path to take.
func CheckTriggerConditions(state *entities.GameState, player *entities.Player, ship *entities.Ship) map[TriggerCondition]bool {
	out := make(map[TriggerCondition]bool)
	if player.Quest != nil && player.Quest.Active && ship != nil && ship.DockedAtPlanetId != nil {
		switch {
		case player.Quest.Stage == entities.QuestStarted && *ship.DockedAtPlanetId == player.Quest.PickupPlanetId:
			out[TriggerCurrentPlanetIsPickup] = true
		case player.Quest.Stage == entities.QuestPicked && *ship.DockedAtPlanetId == player.Quest.DropoffPlanetId:
			out[TriggerCurrentPlanetIsDropoff] = true
		}
	}
	if ship != nil {
		for _, t := range entities.MineralTypes {
			if ship.Inventory.QuantityOf(t) > 0 {
				out[TriggerAnyMineralsInCargo] = true
				break
			}
		}
	}
	return out
}

// VisibleOptions filters a node's options down to those whose trigger
// condition (if any) currently holds.
func VisibleOptions(node Node, active map[TriggerCondition]bool) []Option {
	var out []Option
	for _, o := range node.Options {
		if o.Condition == TriggerNone || active[o.Condition] {
			out = append(out, o)
		}
	}
	return out
}

// Execute applies the transition for (currentState, optionId), advancing
// the player's DialogueStateId (or clearing it, ending the conversation)
// and returning the side effects the tick driver must apply against
// GameState/market/quest data it already holds in scope. changed reports
// whether the player's dialogue state actually moved, resolving the open
// question of what "did this choice do anything" means: it is true
// whenever the state id changes OR a non-Nothing effect fires, false for a
// pure no-op re-read of the same prompt.
func Execute(table CompiledTable, player *entities.Player, optionId entities.Id) (changed bool, effects []SideEffect, switchTo string, err error) {
	if player.DialogueStateId == nil {
		return false, nil, "", ErrUnknownState
	}
	key := transitionKey{State: *player.DialogueStateId, Option: optionId}
	t, ok := table.Transitions[key]
	if !ok {
		return false, nil, "", ErrUnknownOption
	}
	prev := *player.DialogueStateId
	if t.NextState == nil {
		player.DialogueStateId = nil
		player.DialogueName = ""
	} else {
		player.DialogueStateId = t.NextState
	}
	moved := t.NextState == nil || *t.NextState != prev
	hasEffect := false
	for _, e := range t.Effects {
		if e != EffectNothing {
			hasEffect = true
			break
		}
	}
	return moved || hasEffect, t.Effects, t.SwitchTo, nil
}

// Substitute resolves "{token}" placeholders in dialogue text against a
// small set of known substitutions (planet/character names); unknown
// tokens are left verbatim rather than erroring, matching how missing
// substitutions in the original degrade to showing the raw token.
func Substitute(text string, values map[string]string) string {
	out := text
	for token, value := range values {
		out = strings.ReplaceAll(out, "{"+token+"}", value)
	}
	return out
}
