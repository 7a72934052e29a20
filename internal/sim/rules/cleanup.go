package rules

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// sweepState drops everything marked ToClean that isn't already handled by
// a more specific sub-phase: combat.TickProjectiles sweeps projectiles,
// minerals, and containers itself, and processShipDeaths rebuilds
// loc.Ships directly, so this only needs to cover wrecks (marked ToClean
// by advanceWrecks once fully decayed) and players (marked ToClean by a
// disconnect the transport layer records, never by Step itself).
func sweepState(state *entities.GameState) {
	for li := range state.Locations {
		loc := &state.Locations[li]
		loc.Wrecks = filterToClean(loc.Wrecks, func(w entities.Wreck) bool { return w.ToClean })
	}
	state.Players = filterToClean(state.Players, func(p entities.Player) bool { return p.ToClean })
}

func filterToClean[T any](items []T, toClean func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !toClean(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
