// Package rules implements the deterministic per-tick simulation driver:
// Step advances one GameState by a fixed elapsed duration, applying queued
// player commands and then every physics/combat/economy sub-phase in a
// fixed order so that the same (state, commands, elapsed) triple always
// produces the same next state.
package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/bots"
	"github.com/gorbit/orbitalrush/internal/sim/dialogue"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/orbit"
)

// Context bundles the state a Step call needs beyond GameState itself:
// data that either persists across ticks outside the replay-diffed state
// (the orbit phase cache, bot standing state) or is loaded once and shared
// read-only across every room running the same content (compiled dialogue
// tables). None of this is part of GameState because none of it is worth
// replaying tick-by-tick — the phase cache is pure content, and bot state
// is re-derivable AI bookkeeping rather than authoritative game state.
type Context struct {
	Cache     *orbit.PhaseCache
	Dialogues map[string]dialogue.CompiledTable
	Bots      []bots.Bot
	Prng      *entities.Prng
}

// FindBot returns the standing decision state for a player id, its index in
// ctx.Bots, and whether one was found.
func (c *Context) FindBot(playerId entities.Id) (bots.Bot, int, bool) {
	for i := range c.Bots {
		if c.Bots[i].Id == playerId {
			return c.Bots[i], i, true
		}
	}
	return bots.Bot{}, -1, false
}
